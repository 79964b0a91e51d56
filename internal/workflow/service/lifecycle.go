package service

import (
	"context"

	"razeflow/internal/workflow/models"
	id "razeflow/pkg/domain"
	dErrors "razeflow/pkg/domain-errors"
)

// UpdateRequest lets the district office rework the request body while it is
// still editable. Resubmission after an initial rejection lands back in
// INITIAL_REQUEST; the historical initial-rejection reason is kept.
func (s *Service) UpdateRequest(ctx context.Context, actor models.Actor, requestID id.RequestID, input CreateInput) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionUpdateRequest, actor, requestID, func(request *models.DemolitionRequest) error {
		if input.Type != request.Type {
			return dErrors.Validation("request_type", "is fixed at creation")
		}
		if err := input.validate(); err != nil {
			return err
		}
		request.Site = input.Site
		request.PriorityDesignation = input.PriorityDesignation
		request.PriorityReason = input.PriorityReason
		return nil
	})
}

// CancelRequest is the district office's exit from any non-terminal state.
func (s *Service) CancelRequest(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionCancelRequest, actor, requestID, func(request *models.DemolitionRequest) error {
		if reason == "" {
			return dErrors.Validation("cancellation_reason", "must not be empty")
		}
		if request.Status == models.StatusSupervisorAssigned {
			request.AppendAssignment(models.AssignmentEvent{
				Type:           models.AssignmentReleased,
				SupervisorID:   request.SupervisorID,
				SupervisorName: request.SupervisorName,
				Reason:         reason,
			})
		}
		request.SetNegativeReason(models.StatusCancelled, reason)
		return nil
	})
}

// InitialReject sends a freshly filed request back to the district office.
func (s *Service) InitialReject(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionInitialReject, actor, requestID, func(request *models.DemolitionRequest) error {
		if reason == "" {
			return dErrors.Validation("rejection_reason", "must not be empty")
		}
		request.SetNegativeReason(models.StatusInitialRejected, reason)
		return nil
	})
}

// PreRecommend routes a recommendation-type request to verification.
func (s *Service) PreRecommend(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionPreRecommend, actor, requestID, func(request *models.DemolitionRequest) error {
		if request.Type != models.TypeRecommendation {
			return dErrors.New(dErrors.CodeInvalidTransition, "pre-recommend applies to RECOMMENDATION requests only")
		}
		return nil
	})
}

// RequestVerification routes a priority-designation request to verification.
// The candidate ranking is the payload being verified, so it must be present
// and well-formed.
func (s *Service) RequestVerification(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionRequestVerification, actor, requestID, func(request *models.DemolitionRequest) error {
		if request.Type != models.TypePriorityDesignation {
			return dErrors.New(dErrors.CodeInvalidTransition, "verification request applies to PRIORITY_DESIGNATION requests only")
		}
		if len(request.PriorityDesignations) == 0 {
			return dErrors.Validation("priority_designations", "must not be empty")
		}
		for i, candidate := range request.PriorityDesignations {
			if !candidate.Identified() {
				return dErrors.Validation("priority_designations", "every candidate must carry an applicant_id or user_id")
			}
			if candidate.Order != i+1 {
				return dErrors.Validation("priority_designations", "candidate orders must be contiguous from 1")
			}
		}
		return nil
	})
}

// CompleteVerification is the architect society's approval.
func (s *Service) CompleteVerification(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionCompleteVerification, actor, requestID, nil)
}

// RejectVerification is the architect society's refusal. Each rejection
// counts; the narrative lands in the rejection reason.
func (s *Service) RejectVerification(ctx context.Context, actor models.Actor, requestID id.RequestID, reason string) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionRejectVerification, actor, requestID, func(request *models.DemolitionRequest) error {
		if reason == "" {
			return dErrors.Validation("rejection_reason", "must not be empty")
		}
		request.SetNegativeReason(models.StatusVerificationRejected, reason)
		request.RejectionCount++
		return nil
	})
}

// CompleteRecommendation closes the city hall's recommendation step.
func (s *Service) CompleteRecommendation(ctx context.Context, actor models.Actor, requestID id.RequestID) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionCompleteRecommendation, actor, requestID, nil)
}

// AssignInput optionally names a supervisor directly; when absent the rank-1
// candidate is confirmed.
type AssignInput struct {
	SupervisorID   id.SupervisorID
	SupervisorName string
}

// AssignSupervisor binds the supervisor and emits the CONFIRMED event.
func (s *Service) AssignSupervisor(ctx context.Context, actor models.Actor, requestID id.RequestID, input AssignInput) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionAssignSupervisor, actor, requestID, func(request *models.DemolitionRequest) error {
		if !input.SupervisorID.IsNil() {
			request.SupervisorID = input.SupervisorID
			request.SupervisorName = input.SupervisorName
		} else if len(request.PriorityDesignations) > 0 {
			request.MirrorLeadCandidate()
		}
		if request.SupervisorID.IsNil() {
			return dErrors.Validation("supervisor_id", "no supervisor resolved from candidates or input")
		}
		request.AppendAssignment(models.AssignmentEvent{
			Type:           models.AssignmentConfirmed,
			SupervisorID:   request.SupervisorID,
			SupervisorName: request.SupervisorName,
		})
		return nil
	})
}
