package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"razeflow/internal/workflow/models"
	"razeflow/internal/workflow/store"
	id "razeflow/pkg/domain"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
}

func (s *MemoryStoreSuite) newRequest() *models.DemolitionRequest {
	return &models.DemolitionRequest{
		ID:            id.NewRequestID(),
		RequestNumber: "D-2026-000001",
		Type:          models.TypeRecommendation,
		Status:        models.StatusInitialRequest,
		Site:          models.Site{Region: "North District", Address: "12-3 Hazelwood Lane"},
	}
}

func (s *MemoryStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	request := s.newRequest()

	s.Require().NoError(s.store.Create(ctx, request))
	s.Equal(1, request.Version)
	s.False(request.CreatedAt.IsZero())

	loaded, err := s.store.Get(ctx, request.ID)
	s.Require().NoError(err)
	s.Equal(request.ID, loaded.ID)
	s.Equal(request.RequestNumber, loaded.RequestNumber)

	s.Run("get misses with ErrNotFound", func() {
		_, err := s.store.Get(ctx, id.NewRequestID())
		s.ErrorIs(err, store.ErrNotFound)
	})

	s.Run("double create conflicts", func() {
		s.ErrorIs(s.store.Create(ctx, request), store.ErrVersionConflict)
	})
}

func (s *MemoryStoreSuite) TestUpdate() {
	ctx := context.Background()
	request := s.newRequest()
	s.Require().NoError(s.store.Create(ctx, request))

	s.Run("bumps the version on success", func() {
		loaded, err := s.store.Get(ctx, request.ID)
		s.Require().NoError(err)
		loaded.Status = models.StatusVerificationRequested

		s.Require().NoError(s.store.Update(ctx, loaded))
		s.Equal(2, loaded.Version)

		current, err := s.store.Get(ctx, request.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusVerificationRequested, current.Status)
		s.Equal(2, current.Version)
	})

	s.Run("rejects stale versions", func() {
		stale, err := s.store.Get(ctx, request.ID)
		s.Require().NoError(err)
		fresh, err := s.store.Get(ctx, request.ID)
		s.Require().NoError(err)

		s.Require().NoError(s.store.Update(ctx, fresh))
		s.ErrorIs(s.store.Update(ctx, stale), store.ErrVersionConflict)
	})

	s.Run("rejects unknown requests", func() {
		s.ErrorIs(s.store.Update(ctx, s.newRequest()), store.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestCloneIsolation() {
	ctx := context.Background()
	request := s.newRequest()
	request.Type = models.TypePriorityDesignation
	request.PriorityDesignations = []models.PriorityCandidate{
		{Order: 1, UserID: id.UserID(uuid.New()), SupervisorName: "Original"},
	}
	s.Require().NoError(s.store.Create(ctx, request))

	// Mutating a loaded copy must not leak into the stored aggregate.
	loaded, err := s.store.Get(ctx, request.ID)
	s.Require().NoError(err)
	loaded.PriorityDesignations[0].SupervisorName = "Tampered"
	loaded.Site.Address = "changed"

	current, err := s.store.Get(ctx, request.ID)
	s.Require().NoError(err)
	s.Equal("Original", current.PriorityDesignations[0].SupervisorName)
	s.Equal("12-3 Hazelwood Lane", current.Site.Address)

	// Same for the caller's own struct after Create.
	request.Site.Region = "changed"
	current, err = s.store.Get(ctx, request.ID)
	s.Require().NoError(err)
	s.Equal("North District", current.Site.Region)
}

func (s *MemoryStoreSuite) TestNextSequence() {
	ctx := context.Background()
	first, err := s.store.NextSequence(ctx)
	s.Require().NoError(err)
	second, err := s.store.NextSequence(ctx)
	s.Require().NoError(err)
	s.Equal(first+1, second)
}
