package audit

import "context"

// Store persists verification events. Implementations must tolerate
// concurrent appends; ordering within the store follows append order.
type Store interface {
	Append(ctx context.Context, event Event) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)
}
