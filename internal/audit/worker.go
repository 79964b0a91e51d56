package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher's inbox into a sink. It keeps Kafka and store
// latency off the request path and is the only goroutine touching the sink.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run consumes until the context is cancelled. Sink failures are logged, not
// fatal; a lost audit event must not stop the trail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink append failed",
					"error", err,
					"action", event.Action,
					"request_id", event.RequestID.String(),
				)
			}
		}
	}
}
