// Package attachments is the port to the external file store. The workflow
// only ever checks that a handle exists; file content never crosses this
// boundary.
package attachments

import (
	"context"
	"sync"
)

type Store interface {
	Exists(ctx context.Context, handle string) (bool, error)
}

// MemoryStore backs tests and development. Handles are registered by whatever
// uploaded them.
type MemoryStore struct {
	mu      sync.RWMutex
	handles map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{handles: make(map[string]struct{})}
}

func (s *MemoryStore) Put(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[handle] = struct{}{}
}

func (s *MemoryStore) Exists(_ context.Context, handle string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.handles[handle]
	return ok, nil
}
