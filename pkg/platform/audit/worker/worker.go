// Package worker drains the audit inbox into a store and an optional sink.
package worker

import (
	"context"
	"log/slog"

	"wmoracle/pkg/platform/audit"
)

// Sink receives events after they are persisted; typically the Kafka
// publisher. A nil sink disables fan-out.
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
}

// Worker consumes audit events from a channel and persists them. Store and
// sink failures are logged and skipped: the trail degrades, it never halts.
type Worker struct {
	store  audit.Store
	sink   Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func New(store audit.Store, sink Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

// Run processes events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			w.handle(ctx, event)
		}
	}
}

func (w *Worker) handle(ctx context.Context, event audit.Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "audit append failed",
			"event_id", event.ID,
			"error", err,
		)
	}
	if w.sink == nil {
		return
	}
	if err := w.sink.Publish(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "audit publish failed",
			"event_id", event.ID,
			"error", err,
		)
	}
}
