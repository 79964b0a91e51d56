// Package lock serializes workflow transitions per request. The store's
// version check is the correctness backstop; the lock keeps well-behaved
// writers from racing each other in the first place.
package lock

import (
	"context"
	"sync"
)

// Locker grants exclusive access to a key. Release must always be called,
// even when the guarded operation fails.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MutexLocker is the in-process implementation for single-instance
// deployments and tests.
type MutexLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewMutexLocker() *MutexLocker {
	return &MutexLocker{slots: make(map[string]chan struct{})}
}

func (l *MutexLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	return slot
}

func (l *MutexLocker) Acquire(ctx context.Context, key string) (func(), error) {
	slot := l.slot(key)
	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
