// Package retry implements the poll-with-timeout loop used by bring-up
// tooling and backend connect paths: a single-purpose predicate polled at a
// fixed interval until success or deadline.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config bounds a polling loop. Zero values fall back to the defaults below.
type Config struct {
	// Timeout is the overall wall-clock budget.
	Timeout time.Duration
	// Interval is the fixed delay between attempts.
	Interval time.Duration
}

const (
	defaultTimeout  = 60 * time.Second
	defaultInterval = 2 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	return c
}

// Until polls fn until it returns nil, the config deadline passes, or ctx is
// cancelled. The first attempt runs immediately. On timeout the last attempt
// error is wrapped so callers can report why the wait failed.
func Until(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	cfg = cfg.withDefaults()

	deadline := time.Now().Add(cfg.Timeout)
	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}

		if time.Now().Add(cfg.Interval).After(deadline) {
			return fmt.Errorf("timed out after %s: %w", cfg.Timeout, lastErr)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}
}
