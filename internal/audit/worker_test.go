package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "razeflow/pkg/domain"
)

type failingSink struct {
	calls atomic.Int64
}

func (s *failingSink) Append(context.Context, Event) error {
	s.calls.Add(1)
	return errors.New("sink down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestChannelPublisherDrainsToSink(t *testing.T) {
	publisher := NewChannelPublisher(16, discardLogger())
	sink := NewMemorySink()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewWorker(sink, publisher.Inbox(), discardLogger()).Run(ctx)
	}()

	requestID := id.NewRequestID()
	publisher.Emit(ctx, Event{RequestID: requestID, Action: "create_request", Outcome: OutcomeAccepted})
	publisher.Emit(ctx, Event{RequestID: requestID, Action: "pre_recommend", Outcome: OutcomeAccepted})
	publisher.Emit(ctx, Event{RequestID: id.NewRequestID(), Action: "create_request", Outcome: OutcomeAccepted})

	require.Eventually(t, func() bool {
		return len(sink.ListByRequest(ctx, requestID)) == 2
	}, time.Second, 10*time.Millisecond)

	events := sink.ListByRequest(ctx, requestID)
	assert.Equal(t, "create_request", events[0].Action)
	assert.Equal(t, "pre_recommend", events[1].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "publisher stamps missing timestamps")

	cancel()
	<-done
}

func TestChannelPublisherDropsWhenFull(t *testing.T) {
	// No worker attached; the buffer fills and further emits must not block.
	publisher := NewChannelPublisher(1, discardLogger())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		publisher.Emit(ctx, Event{Action: "first"})
		publisher.Emit(ctx, Event{Action: "dropped"})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}
	assert.Len(t, publisher.Inbox(), 1)
}

func TestWorkerSurvivesSinkFailures(t *testing.T) {
	publisher := NewChannelPublisher(4, discardLogger())
	sink := &failingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewWorker(sink, publisher.Inbox(), discardLogger()).Run(ctx)
	}()

	publisher.Emit(ctx, Event{Action: "one"})
	publisher.Emit(ctx, Event{Action: "two"})

	require.Eventually(t, func() bool {
		return sink.calls.Load() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
