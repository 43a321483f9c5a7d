package resilience

import (
	"context"
	"time"
)

// Backoff describes how often and how patiently a call is retried.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// Delay returns the wait before retry number attempt (1-based): Initial
// doubled per attempt and capped at Max.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 || b.Initial <= 0 {
		return 0
	}
	d := b.Initial << (attempt - 1)
	if d <= 0 || (b.Max > 0 && d > b.Max) {
		return b.Max
	}
	return d
}

// Retry calls fn until it succeeds, the attempts run out, retryable reports
// false for the error, or ctx is done.
func Retry(ctx context.Context, b Backoff, retryable func(error) bool, fn func(context.Context) error) error {
	attempts := max(b.Attempts, 1)

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(b.Delay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		err = fn(ctx)
		if err == nil || (retryable != nil && !retryable(err)) {
			return err
		}
	}
	return err
}
