package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink persists audit events. Implementations must tolerate being called from
// the worker goroutine only.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is what workflow services emit through. Emission must never block
// the request path.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

// ChannelPublisher buffers events for a Worker. When the buffer is full the
// event is dropped and logged; the on-aggregate assignment history is the
// durable record, this trail is operational.
type ChannelPublisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewChannelPublisher(buffer int, logger *slog.Logger) *ChannelPublisher {
	return &ChannelPublisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

func (p *ChannelPublisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"request_id", event.RequestID.String(),
		)
	}
}

// Inbox exposes the event channel for the worker.
func (p *ChannelPublisher) Inbox() <-chan Event { return p.inbox }

// NopPublisher discards events; used where no audit trail is wired.
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, Event) {}
