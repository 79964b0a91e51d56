// Package service is the workflow engine for demolition-supervision
// requests. Every status change goes through the transition table under a
// per-request lock; the store's version check catches writers that lost the
// race anyway.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"razeflow/internal/attachments"
	"razeflow/internal/audit"
	"razeflow/internal/platform/lock"
	"razeflow/internal/platform/metrics"
	"razeflow/internal/workflow/models"
	"razeflow/internal/workflow/store"
	id "razeflow/pkg/domain"
	dErrors "razeflow/pkg/domain-errors"
)

type Service struct {
	store       store.Store
	locker      lock.Locker
	attachments attachments.Store
	auditor     audit.Publisher
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAttachmentStore(store attachments.Store) Option {
	return func(s *Service) { s.attachments = store }
}

func New(st store.Store, locker lock.Locker, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("workflow store is required")
	}
	if locker == nil {
		return nil, fmt.Errorf("locker is required")
	}
	svc := &Service{
		store:   st,
		locker:  locker,
		auditor: audit.NopPublisher{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateInput is the district office's request body for create and update.
type CreateInput struct {
	Type                models.RequestType
	Site                models.Site
	PriorityDesignation bool
	PriorityReason      string
}

func (in CreateInput) validate() error {
	if !in.Type.IsValid() {
		return dErrors.Validation("request_type", "must be RECOMMENDATION or PRIORITY_DESIGNATION")
	}
	if in.Site.Region == "" {
		return dErrors.Validation("region", "must not be empty")
	}
	if in.Site.Address == "" {
		return dErrors.Validation("address", "must not be empty")
	}
	if in.PriorityDesignation && in.PriorityReason == "" {
		return dErrors.Validation("priority_reason", "required when priority_designation is set")
	}
	return nil
}

// CreateRequest files a new demolition request for the district office. The
// request number is assigned here and never changes.
func (s *Service) CreateRequest(ctx context.Context, actor models.Actor, input CreateInput) (*models.DemolitionRequest, error) {
	if actor.Role != models.RoleDistrictOffice {
		s.audit(ctx, audit.Event{ActorID: actor.UserID, Role: actor.Role, Action: string(ActionCreateRequest), Outcome: audit.OutcomeRejected, Reason: "role not permitted"})
		return nil, dErrors.Newf(dErrors.CodeForbidden, "role %s may not perform %s", actor.Role, ActionCreateRequest)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	seq, err := s.store.NextSequence(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate request number")
	}

	now := time.Now()
	request := &models.DemolitionRequest{
		ID:                  id.NewRequestID(),
		RequestNumber:       fmt.Sprintf("D-%d-%06d", now.Year(), seq),
		Type:                input.Type,
		Status:              models.StatusInitialRequest,
		Site:                input.Site,
		PriorityDesignation: input.PriorityDesignation,
		PriorityReason:      input.PriorityReason,
		RequestedAt:         now,
	}

	if err := s.store.Create(ctx, request); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist request")
	}

	s.logger.InfoContext(ctx, "demolition request created",
		"request_id", request.ID.String(),
		"request_number", request.RequestNumber,
		"request_type", string(request.Type),
	)
	s.audit(ctx, audit.Event{
		RequestID:     request.ID,
		RequestNumber: request.RequestNumber,
		ActorID:       actor.UserID,
		Role:          actor.Role,
		Action:        string(ActionCreateRequest),
		ToStatus:      request.Status,
		Outcome:       audit.OutcomeAccepted,
	})
	s.metrics.IncrementTransition(string(ActionCreateRequest), string(audit.OutcomeAccepted))
	return request, nil
}

// GetRequest returns the aggregate for any authenticated role.
func (s *Service) GetRequest(ctx context.Context, requestID id.RequestID) (*models.DemolitionRequest, error) {
	request, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return request, nil
}

// GetAssignmentHistory returns the append-only assignment trail.
func (s *Service) GetAssignmentHistory(ctx context.Context, requestID id.RequestID) ([]models.AssignmentEvent, error) {
	request, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return request.AssignmentHistory, nil
}

// transition runs one table-governed status change: lock, load, authorize,
// apply, stamp, save. fn sees the aggregate before the status is rewritten
// and holds the action's preconditions and side effects.
func (s *Service) transition(ctx context.Context, action Action, actor models.Actor, requestID id.RequestID, fn func(request *models.DemolitionRequest) error) (*models.DemolitionRequest, error) {
	start := time.Now()
	request, err := s.locked(ctx, requestID, func(request *models.DemolitionRequest) error {
		rule, err := authorize(action, actor.Role, request.Status)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(request); err != nil {
				return err
			}
		}
		if !rule.SameStatus {
			request.Status = rule.To
			stampPhase(request, rule.To)
		}
		return nil
	})
	s.metrics.ObserveTransitionDuration(time.Since(start))

	event := audit.Event{
		RequestID: requestID,
		ActorID:   actor.UserID,
		Role:      actor.Role,
		Action:    string(action),
	}
	if err != nil {
		event.Outcome = audit.OutcomeRejected
		event.Reason = err.Error()
		s.audit(ctx, event)
		s.metrics.IncrementTransition(string(action), string(audit.OutcomeRejected))
		return nil, err
	}

	event.RequestNumber = request.RequestNumber
	event.ToStatus = request.Status
	event.Outcome = audit.OutcomeAccepted
	s.audit(ctx, event)
	s.metrics.IncrementTransition(string(action), string(audit.OutcomeAccepted))
	s.logger.InfoContext(ctx, "workflow transition applied",
		"request_id", requestID.String(),
		"action", string(action),
		"status", string(request.Status),
	)
	return request, nil
}

// locked serializes a read-modify-write of one aggregate.
func (s *Service) locked(ctx context.Context, requestID id.RequestID, fn func(request *models.DemolitionRequest) error) (*models.DemolitionRequest, error) {
	release, err := s.locker.Acquire(ctx, requestID.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire request lock")
	}
	defer release()

	request, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if err := fn(request); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, request); err != nil {
		return nil, translateStoreErr(err)
	}
	return request, nil
}

func (s *Service) audit(ctx context.Context, event audit.Event) {
	s.auditor.Emit(ctx, event)
}

// stampPhase records the phase timestamp for the state just entered,
// write-once per phase.
func stampPhase(request *models.DemolitionRequest, to models.Status) {
	now := time.Now()
	switch to {
	case models.StatusVerificationRequested:
		if request.VerificationRequestedAt.IsZero() {
			request.VerificationRequestedAt = now
		}
	case models.StatusVerificationCompleted:
		if request.VerificationCompletedAt.IsZero() {
			request.VerificationCompletedAt = now
		}
	case models.StatusSupervisorAssigned:
		if request.AssignedAt.IsZero() {
			request.AssignedAt = now
		}
	case models.StatusSupervisorCompleted:
		if request.CompletedAt.IsZero() {
			request.CompletedAt = now
		}
	}
}

func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "request not found")
	case errors.Is(err, store.ErrVersionConflict):
		return dErrors.Wrap(err, dErrors.CodeConcurrentModification, "request was modified concurrently")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
	}
}
