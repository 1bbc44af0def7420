package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore implements Store with per-key fixed windows. Not distributed;
// production fleets with multiple replicas use the Redis store.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow counts one request against key's current window.
func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, windowSize time.Duration) (*Result, error) {
	if limit <= 0 {
		return &Result{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := s.windows[key]
	if w == nil || now.Sub(w.start) >= windowSize {
		w = &window{start: now}
		s.windows[key] = w
	}

	resetAt := w.start.Add(windowSize)
	if w.count >= limit {
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	w.count++
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - w.count,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the counter for a key.
func (s *InMemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}
