package service

import (
	"razeflow/internal/workflow/models"
	dErrors "razeflow/pkg/domain-errors"
)

// Action names one workflow transition. The table below is the single source
// of truth for who may move a request from where to where; nothing else in
// the service checks roles against statuses.
type Action string

const (
	ActionCreateRequest          Action = "create_request"
	ActionUpdateRequest          Action = "update_request"
	ActionCancelRequest          Action = "cancel_request"
	ActionInitialReject          Action = "initial_reject"
	ActionPreRecommend           Action = "pre_recommend"
	ActionRequestVerification    Action = "request_verification"
	ActionCompleteVerification   Action = "complete_verification"
	ActionRejectVerification     Action = "reject_verification"
	ActionCompleteRecommendation Action = "complete_recommendation"
	ActionAssignSupervisor       Action = "assign_supervisor"
	ActionSubmitSettlement       Action = "submit_settlement"
	ActionSubmitCompletion       Action = "submit_completion"
)

// transition is one row of the table. A nil From with AnyNonTerminal set
// means every non-terminal state qualifies. SameStatus marks rows that leave
// the status untouched.
type transition struct {
	Actor          models.Role
	From           []models.Status
	To             models.Status
	AnyNonTerminal bool
	SameStatus     bool
}

var transitionTable = map[Action]transition{
	ActionUpdateRequest: {
		Actor: models.RoleDistrictOffice,
		From:  []models.Status{models.StatusInitialRequest, models.StatusInitialRejected},
		To:    models.StatusInitialRequest,
	},
	ActionCancelRequest: {
		Actor:          models.RoleDistrictOffice,
		AnyNonTerminal: true,
		To:             models.StatusCancelled,
	},
	ActionInitialReject: {
		Actor: models.RoleCityHall,
		From:  []models.Status{models.StatusInitialRequest, models.StatusReRequest},
		To:    models.StatusInitialRejected,
	},
	ActionPreRecommend: {
		Actor: models.RoleCityHall,
		From:  []models.Status{models.StatusInitialRequest, models.StatusVerificationRejected, models.StatusReRequest},
		To:    models.StatusVerificationRequested,
	},
	ActionRequestVerification: {
		Actor: models.RoleCityHall,
		From:  []models.Status{models.StatusInitialRequest},
		To:    models.StatusVerificationRequested,
	},
	ActionCompleteVerification: {
		Actor: models.RoleArchitectSociety,
		From:  []models.Status{models.StatusVerificationRequested},
		To:    models.StatusVerificationCompleted,
	},
	ActionRejectVerification: {
		Actor: models.RoleArchitectSociety,
		From:  []models.Status{models.StatusVerificationRequested},
		To:    models.StatusVerificationRejected,
	},
	ActionCompleteRecommendation: {
		Actor: models.RoleCityHall,
		From:  []models.Status{models.StatusVerificationCompleted},
		To:    models.StatusRecommendationCompleted,
	},
	ActionAssignSupervisor: {
		Actor: models.RoleDistrictOffice,
		From:  []models.Status{models.StatusRecommendationCompleted},
		To:    models.StatusSupervisorAssigned,
	},
	ActionSubmitSettlement: {
		Actor:      models.RoleInspector,
		From:       []models.Status{models.StatusSupervisorAssigned},
		To:         models.StatusSupervisorAssigned,
		SameStatus: true,
	},
	ActionSubmitCompletion: {
		Actor: models.RoleInspector,
		From:  []models.Status{models.StatusSupervisorAssigned},
		To:    models.StatusSupervisorCompleted,
	},
}

// authorize checks role first, then state: an unauthorized role is rejected
// regardless of how the request sits.
func authorize(action Action, role models.Role, from models.Status) (transition, error) {
	rule, ok := transitionTable[action]
	if !ok {
		return transition{}, dErrors.Newf(dErrors.CodeInternal, "unknown action %q", action)
	}
	if role != rule.Actor {
		return transition{}, dErrors.Newf(dErrors.CodeForbidden, "role %s may not perform %s", role, action)
	}
	if action == ActionSubmitCompletion && from == models.StatusSupervisorCompleted {
		return transition{}, dErrors.New(dErrors.CodeAlreadyCompleted, "completion report already submitted")
	}
	if rule.AnyNonTerminal {
		if from.IsTerminal() {
			return transition{}, dErrors.Newf(dErrors.CodeInvalidTransition, "%s is not allowed from terminal status %s", action, from)
		}
		return rule, nil
	}
	for _, allowed := range rule.From {
		if from == allowed {
			return rule, nil
		}
	}
	return transition{}, dErrors.Newf(dErrors.CodeInvalidTransition, "%s is not allowed from status %s", action, from)
}
