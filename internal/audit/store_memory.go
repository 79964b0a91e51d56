package audit

import (
	"context"
	"sync"

	id "razeflow/pkg/domain"
)

// MemorySink keeps events in memory; tests and development use it in place of
// the Kafka sink.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByRequest returns the recorded events for one request, oldest first.
func (s *MemorySink) ListByRequest(_ context.Context, requestID id.RequestID) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out
}
