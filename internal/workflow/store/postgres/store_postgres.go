// Package postgres persists demolition requests in PostgreSQL via pgx. Owned
// collections live as JSONB on the aggregate row; the version column carries
// the optimistic-concurrency check.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"razeflow/internal/workflow/models"
	"razeflow/internal/workflow/store"
	id "razeflow/pkg/domain"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ownedState is the JSONB blob holding everything the aggregate owns beyond
// its scalar columns.
type ownedState struct {
	Site       models.Site                `json:"site"`
	Candidates []models.PriorityCandidate `json:"candidates,omitempty"`
	Settlement *models.SettlementRecord   `json:"settlement,omitempty"`
	Completion *models.CompletionReport   `json:"completion,omitempty"`
	History    []models.AssignmentEvent   `json:"history,omitempty"`
}

const insertSQL = `
INSERT INTO demolition_requests (
	id, request_number, request_type, status,
	priority_designation, priority_reason,
	supervisor_id, supervisor_name,
	rejection_reason, initial_rejection_reason, cancellation_reason, rejection_count,
	requested_at, verification_requested_at, verification_completed_at, assigned_at, completed_at,
	owned, version, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`

func (s *Store) Create(ctx context.Context, request *models.DemolitionRequest) error {
	now := time.Now()
	request.Version = 1
	request.CreatedAt = now
	request.UpdatedAt = now

	owned, err := marshalOwned(request)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, insertSQL,
		uuid.UUID(request.ID), request.RequestNumber, string(request.Type), string(request.Status),
		request.PriorityDesignation, request.PriorityReason,
		nullableUUID(uuid.UUID(request.SupervisorID)), request.SupervisorName,
		request.RejectionReason, request.InitialRejectionReason, request.CancellationReason, request.RejectionCount,
		nullableTime(request.RequestedAt), nullableTime(request.VerificationRequestedAt),
		nullableTime(request.VerificationCompletedAt), nullableTime(request.AssignedAt), nullableTime(request.CompletedAt),
		owned, request.Version, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

const selectSQL = `
SELECT id, request_number, request_type, status,
	priority_designation, priority_reason,
	supervisor_id, supervisor_name,
	rejection_reason, initial_rejection_reason, cancellation_reason, rejection_count,
	requested_at, verification_requested_at, verification_completed_at, assigned_at, completed_at,
	owned, version, created_at, updated_at
FROM demolition_requests
WHERE id = $1`

func (s *Store) Get(ctx context.Context, requestID id.RequestID) (*models.DemolitionRequest, error) {
	row := s.pool.QueryRow(ctx, selectSQL, uuid.UUID(requestID))
	return scanRequest(row)
}

const updateSQL = `
UPDATE demolition_requests SET
	status = $3,
	priority_designation = $4, priority_reason = $5,
	supervisor_id = $6, supervisor_name = $7,
	rejection_reason = $8, initial_rejection_reason = $9, cancellation_reason = $10, rejection_count = $11,
	requested_at = $12, verification_requested_at = $13, verification_completed_at = $14,
	assigned_at = $15, completed_at = $16,
	owned = $17, version = version + 1, updated_at = $18
WHERE id = $1 AND version = $2`

func (s *Store) Update(ctx context.Context, request *models.DemolitionRequest) error {
	owned, err := marshalOwned(request)
	if err != nil {
		return err
	}
	now := time.Now()
	tag, err := s.pool.Exec(ctx, updateSQL,
		uuid.UUID(request.ID), request.Version,
		string(request.Status),
		request.PriorityDesignation, request.PriorityReason,
		nullableUUID(uuid.UUID(request.SupervisorID)), request.SupervisorName,
		request.RejectionReason, request.InitialRejectionReason, request.CancellationReason, request.RejectionCount,
		nullableTime(request.RequestedAt), nullableTime(request.VerificationRequestedAt),
		nullableTime(request.VerificationCompletedAt), nullableTime(request.AssignedAt), nullableTime(request.CompletedAt),
		owned, now,
	)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row vanished or a concurrent writer bumped the version.
		exists, err := s.exists(ctx, request.ID)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrNotFound
		}
		return store.ErrVersionConflict
	}
	request.Version++
	request.UpdatedAt = now
	return nil
}

func (s *Store) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.pool.QueryRow(ctx, `SELECT nextval('demolition_request_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next request sequence: %w", err)
	}
	return seq, nil
}

func (s *Store) exists(ctx context.Context, requestID id.RequestID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM demolition_requests WHERE id = $1)`, uuid.UUID(requestID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check request existence: %w", err)
	}
	return exists, nil
}

func scanRequest(row pgx.Row) (*models.DemolitionRequest, error) {
	var (
		request      models.DemolitionRequest
		requestID    uuid.UUID
		requestType  string
		status       string
		supervisorID *uuid.UUID
		phaseTimes   [5]*time.Time
		owned        []byte
	)
	err := row.Scan(
		&requestID, &request.RequestNumber, &requestType, &status,
		&request.PriorityDesignation, &request.PriorityReason,
		&supervisorID, &request.SupervisorName,
		&request.RejectionReason, &request.InitialRejectionReason, &request.CancellationReason, &request.RejectionCount,
		&phaseTimes[0], &phaseTimes[1], &phaseTimes[2], &phaseTimes[3], &phaseTimes[4],
		&owned, &request.Version, &request.CreatedAt, &request.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan request: %w", err)
	}

	request.ID = id.RequestID(requestID)
	request.Type = models.RequestType(requestType)
	request.Status = models.Status(status)
	if supervisorID != nil {
		request.SupervisorID = id.SupervisorID(*supervisorID)
	}
	request.RequestedAt = derefTime(phaseTimes[0])
	request.VerificationRequestedAt = derefTime(phaseTimes[1])
	request.VerificationCompletedAt = derefTime(phaseTimes[2])
	request.AssignedAt = derefTime(phaseTimes[3])
	request.CompletedAt = derefTime(phaseTimes[4])

	var state ownedState
	if err := json.Unmarshal(owned, &state); err != nil {
		return nil, fmt.Errorf("decode owned state: %w", err)
	}
	request.Site = state.Site
	request.PriorityDesignations = state.Candidates
	request.Settlement = state.Settlement
	request.Completion = state.Completion
	request.AssignmentHistory = state.History

	return &request, nil
}

func marshalOwned(request *models.DemolitionRequest) ([]byte, error) {
	owned, err := json.Marshal(ownedState{
		Site:       request.Site,
		Candidates: request.PriorityDesignations,
		Settlement: request.Settlement,
		Completion: request.Completion,
		History:    request.AssignmentHistory,
	})
	if err != nil {
		return nil, fmt.Errorf("encode owned state: %w", err)
	}
	return owned, nil
}

func nullableUUID(u uuid.UUID) *uuid.UUID {
	if u == uuid.Nil {
		return nil
	}
	return &u
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
