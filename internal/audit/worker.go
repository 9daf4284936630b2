package audit

import (
	"context"
	"log/slog"
	"time"
)

// Queue decouples event emission from the sink so a slow broker never blocks
// a save. Emit enqueues without blocking; the worker drains the inbox into
// the sink and logs failures instead of propagating them.
type Queue struct {
	inbox  chan Event
	sink   Publisher
	logger *slog.Logger
}

func NewQueue(sink Publisher, logger *slog.Logger, buffer int) *Queue {
	if buffer <= 0 {
		buffer = 256
	}
	return &Queue{
		inbox:  make(chan Event, buffer),
		sink:   sink,
		logger: logger,
	}
}

// Emit enqueues the event. When the inbox is full the event is dropped and
// logged; the audit trail is best effort, user operations come first.
func (q *Queue) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case q.inbox <- event:
	default:
		q.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"group", event.GroupSlug,
			"field", event.FieldSlug,
		)
	}
	return nil
}

// Run drains the inbox until the context is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-q.inbox:
			if err := q.sink.Emit(ctx, event); err != nil {
				q.logger.ErrorContext(ctx, "failed to publish audit event",
					"error", err,
					"action", event.Action,
					"group", event.GroupSlug,
				)
			}
		}
	}
}
