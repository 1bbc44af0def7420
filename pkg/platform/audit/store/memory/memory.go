// Package memory provides the default audit store: a bounded in-memory ring.
// Suitable for single-instance deployments and tests; production fleets use
// the postgres store.
package memory

import (
	"context"
	"sync"

	"wmoracle/pkg/platform/audit"
)

const defaultCapacity = 4096

// Store keeps the most recent events in a fixed-size ring buffer.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
	next   int
	full   bool
}

// New creates a ring store with the given capacity (<=0 uses the default).
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Store{events: make([]audit.Event, capacity)}
}

// Append records an event, evicting the oldest once the ring is full.
func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[s.next] = event
	s.next++
	if s.next == len(s.events) {
		s.next = 0
		s.full = true
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = len(s.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]audit.Event, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := s.next - i
		if idx < 0 {
			idx += len(s.events)
		}
		out = append(out, s.events[idx])
	}
	return out, nil
}
