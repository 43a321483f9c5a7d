package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker stops calls to a failing dependency. After Threshold consecutive
// failures it opens for Cooldown, then lets up to Probes trial calls through;
// they all have to succeed to close it again.
type Breaker struct {
	cfg BreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  int
	passed   int
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		cfg:   cfg.normalized(),
		now:   time.Now,
		state: StateClosed,
	}
}

// Allow reserves a call slot. Every successful Allow must be followed by
// exactly one Success or Failure.
func (b *Breaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
			return ErrCircuitOpen
		}
		b.state, b.probing, b.passed = StateHalfOpen, 0, 0
	}
	if b.state == StateHalfOpen {
		if b.probing >= b.cfg.Probes {
			return ErrCircuitOpen
		}
		b.probing++
	}
	return nil
}

func (b *Breaker) Success() {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.probing = max(b.probing-1, 0)
		b.passed++
		if b.passed >= b.cfg.Probes && b.probing == 0 {
			b.state, b.failures, b.passed = StateClosed, 0, 0
			b.openedAt = time.Time{}
		}
	}
}

func (b *Breaker) Failure() {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.Threshold {
			b.trip()
		}
	case StateHalfOpen:
		b.trip()
	case StateOpen:
		b.openedAt = b.now()
	}
}

// State reports the state a call arriving now would observe.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.probing, b.passed = 0, 0
}
