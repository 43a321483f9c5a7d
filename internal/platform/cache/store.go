package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/futball/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a process-local TTL cache. A zero TTL keeps entries until they are
// invalidated.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	loads  resilience.Group[any]
	mu     sync.RWMutex
	values map[string]entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:    ttl,
		now:    time.Now,
		values: make(map[string]entry),
	}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		if cur, ok := s.values[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.values, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any) {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.values[key] = e
	s.mu.Unlock()
}

// Invalidate drops every key starting with prefix; an empty prefix clears
// the store.
func (s *Store) Invalidate(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
		}
	}
}

// Load returns the cached value for key or runs loader once for all
// concurrent callers and caches its result. Errors are not cached.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}
