package resilience

import "sync"

// Group collapses concurrent calls that share a key into one execution; every
// caller receives the same result.
type Group[T any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[T]
}

type flight[T any] struct {
	done  chan struct{}
	value T
	err   error
	dups  int
}

// Do runs fn once per key at a time. shared reports whether the result was
// produced for another caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (value T, err error, shared bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flight[T])
	}
	if f, ok := g.inflight[key]; ok {
		f.dups++
		g.mu.Unlock()
		<-f.done
		return f.value, f.err, true
	}

	f := &flight[T]{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	f.value, f.err = fn()

	g.mu.Lock()
	delete(g.inflight, key)
	shared = f.dups > 0
	g.mu.Unlock()
	close(f.done)

	return f.value, f.err, shared
}
