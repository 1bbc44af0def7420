package audit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Emitter is the producer side of the audit pipeline. Emit never blocks the
// verification path: when the buffer is full the event is dropped and counted.
type Emitter struct {
	inbox   chan Event
	logger  *slog.Logger
	dropped atomic.Int64
}

// NewEmitter creates an emitter with a buffered inbox of the given size.
func NewEmitter(bufferSize int, logger *slog.Logger) *Emitter {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &Emitter{
		inbox:  make(chan Event, bufferSize),
		logger: logger,
	}
}

// Inbox exposes the consumer end for the worker.
func (e *Emitter) Inbox() <-chan Event { return e.inbox }

// Dropped reports how many events were discarded due to a full buffer.
func (e *Emitter) Dropped() int64 { return e.dropped.Load() }

// Emit enqueues an event, dropping it if the worker has fallen behind.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	select {
	case e.inbox <- event:
	default:
		n := e.dropped.Add(1)
		if e.logger != nil {
			e.logger.WarnContext(ctx, "audit buffer full, event dropped",
				"event_id", event.ID,
				"dropped_total", n,
			)
		}
	}
}
