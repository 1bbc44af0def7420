// Package ratelimit guards the verification endpoint with a fixed-window
// limiter keyed by client IP. The in-memory store covers single instances;
// the Redis store shares one budget across replicas.
//
// Limiter failures fail open: a broken backend must not turn the oracle into
// a denial of service against the consensus layer.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one admission decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store implements the fixed-window counting.
type Store interface {
	// Allow counts one request against key's window and reports whether it
	// fits under limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
	// Reset clears the counter for a key.
	Reset(ctx context.Context, key string) error
}
