// Package store defines the persistence boundary for demolition requests.
// Implementations must enforce the aggregate version on update so concurrent
// writers cannot both succeed from the same snapshot.
package store

import (
	"context"
	"errors"

	"razeflow/internal/workflow/models"
	id "razeflow/pkg/domain"
)

// Sentinel errors for storage facts. The workflow service translates these
// into coded domain errors.
var (
	ErrNotFound        = errors.New("request not found")
	ErrVersionConflict = errors.New("request version conflict")
)

type Store interface {
	// Create persists a new aggregate at version 1.
	Create(ctx context.Context, request *models.DemolitionRequest) error
	// Get returns a copy of the aggregate; mutations on the copy are not
	// visible until Update succeeds.
	Get(ctx context.Context, requestID id.RequestID) (*models.DemolitionRequest, error)
	// Update persists the aggregate if its Version still matches the stored
	// one, then bumps the version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, request *models.DemolitionRequest) error
	// NextSequence yields the next value of the request-number sequence.
	NextSequence(ctx context.Context) (int64, error)
}
