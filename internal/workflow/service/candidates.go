package service

import (
	"context"

	"razeflow/internal/audit"
	"razeflow/internal/workflow/candidates"
	"razeflow/internal/workflow/models"
	id "razeflow/pkg/domain"
	dErrors "razeflow/pkg/domain-errors"
)

// Candidate mutations run under the same per-request lock as transitions:
// the verification-request gate reads the list, so mutating it concurrently
// would race the gate it feeds. Mutation is allowed only while the request is
// still editable and only to the filing roles.
func (s *Service) candidateMutation(ctx context.Context, operation string, actor models.Actor, requestID id.RequestID, fn func(request *models.DemolitionRequest) error) (*models.DemolitionRequest, error) {
	if actor.Role != models.RoleDistrictOffice && actor.Role != models.RoleCityHall {
		return nil, dErrors.Newf(dErrors.CodeForbidden, "role %s may not modify priority candidates", actor.Role)
	}
	request, err := s.locked(ctx, requestID, func(request *models.DemolitionRequest) error {
		if !request.Editable() {
			return dErrors.Newf(dErrors.CodeInvalidTransition, "candidate list is frozen in status %s", request.Status)
		}
		if err := fn(request); err != nil {
			return err
		}
		request.MirrorLeadCandidate()
		return nil
	})
	if err != nil {
		s.audit(ctx, audit.Event{RequestID: requestID, ActorID: actor.UserID, Role: actor.Role, Action: operation, Outcome: audit.OutcomeRejected, Reason: err.Error()})
		return nil, err
	}
	s.audit(ctx, audit.Event{RequestID: requestID, RequestNumber: request.RequestNumber, ActorID: actor.UserID, Role: actor.Role, Action: operation, ToStatus: request.Status, Outcome: audit.OutcomeAccepted})
	s.metrics.IncrementCandidateMutation(operation)
	return request, nil
}

// AddPriorityCandidate appends a nomination at the end of the ranking.
func (s *Service) AddPriorityCandidate(ctx context.Context, actor models.Actor, requestID id.RequestID, candidate models.PriorityCandidate) (*models.DemolitionRequest, error) {
	return s.candidateMutation(ctx, "add_candidate", actor, requestID, func(request *models.DemolitionRequest) error {
		list, err := candidates.Add(request.PriorityDesignations, candidate)
		if err != nil {
			return err
		}
		request.PriorityDesignations = list
		added := list[len(list)-1]
		request.AppendAssignment(models.AssignmentEvent{
			Type:           models.AssignmentSelected,
			SupervisorID:   added.SupervisorRef(),
			SupervisorName: added.SupervisorName,
		})
		return nil
	})
}

// RemovePriorityCandidate drops the nomination at the given rank.
func (s *Service) RemovePriorityCandidate(ctx context.Context, actor models.Actor, requestID id.RequestID, order int) (*models.DemolitionRequest, error) {
	return s.candidateMutation(ctx, "remove_candidate", actor, requestID, func(request *models.DemolitionRequest) error {
		var removed models.PriorityCandidate
		if order >= 1 && order <= len(request.PriorityDesignations) {
			removed = request.PriorityDesignations[order-1]
		}
		list, err := candidates.Remove(request.PriorityDesignations, order)
		if err != nil {
			return err
		}
		request.PriorityDesignations = list
		request.AppendAssignment(models.AssignmentEvent{
			Type:           models.AssignmentReleased,
			SupervisorID:   removed.SupervisorRef(),
			SupervisorName: removed.SupervisorName,
		})
		return nil
	})
}

// MovePriorityCandidate swaps the nomination with its neighbor.
func (s *Service) MovePriorityCandidate(ctx context.Context, actor models.Actor, requestID id.RequestID, order int, direction candidates.Direction) (*models.DemolitionRequest, error) {
	return s.candidateMutation(ctx, "move_candidate", actor, requestID, func(request *models.DemolitionRequest) error {
		list, err := candidates.Move(request.PriorityDesignations, order, direction)
		if err != nil {
			return err
		}
		request.PriorityDesignations = list
		return nil
	})
}
