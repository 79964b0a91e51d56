// Package memory is the in-process store used by tests and single-instance
// development setups.
package memory

import (
	"context"
	"sync"
	"time"

	"razeflow/internal/workflow/models"
	"razeflow/internal/workflow/store"
	id "razeflow/pkg/domain"
)

type Store struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*models.DemolitionRequest
	sequence int64
}

func New() *Store {
	return &Store{requests: make(map[id.RequestID]*models.DemolitionRequest)}
}

func (s *Store) Create(_ context.Context, request *models.DemolitionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[request.ID]; exists {
		return store.ErrVersionConflict
	}
	now := time.Now()
	request.Version = 1
	request.CreatedAt = now
	request.UpdatedAt = now
	s.requests[request.ID] = request.Clone()
	return nil
}

func (s *Store) Get(_ context.Context, requestID id.RequestID) (*models.DemolitionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, exists := s.requests[requestID]
	if !exists {
		return nil, store.ErrNotFound
	}
	return request.Clone(), nil
}

func (s *Store) Update(_ context.Context, request *models.DemolitionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.requests[request.ID]
	if !exists {
		return store.ErrNotFound
	}
	if current.Version != request.Version {
		return store.ErrVersionConflict
	}
	request.Version++
	request.UpdatedAt = time.Now()
	s.requests[request.ID] = request.Clone()
	return nil
}

func (s *Store) NextSequence(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	return s.sequence, nil
}
