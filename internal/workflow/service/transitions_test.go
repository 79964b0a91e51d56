package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"razeflow/internal/workflow/models"
	dErrors "razeflow/pkg/domain-errors"
)

// TestTransitionTable_Closure enumerates every (action, role, from-status)
// triple and asserts that exactly the combinations in the table pass
// authorization. Status never changes through anything else, so this closes
// the reachable state space.
func TestTransitionTable_Closure(t *testing.T) {
	type key struct {
		action Action
		role   models.Role
		from   models.Status
	}
	allowed := make(map[key]bool)
	record := func(action Action, role models.Role, from ...models.Status) {
		for _, f := range from {
			allowed[key{action, role, f}] = true
		}
	}

	nonTerminal := []models.Status{}
	for _, status := range models.Statuses {
		if !status.IsTerminal() {
			nonTerminal = append(nonTerminal, status)
		}
	}

	record(ActionUpdateRequest, models.RoleDistrictOffice, models.StatusInitialRequest, models.StatusInitialRejected)
	record(ActionCancelRequest, models.RoleDistrictOffice, nonTerminal...)
	record(ActionInitialReject, models.RoleCityHall, models.StatusInitialRequest, models.StatusReRequest)
	record(ActionPreRecommend, models.RoleCityHall, models.StatusInitialRequest, models.StatusVerificationRejected, models.StatusReRequest)
	record(ActionRequestVerification, models.RoleCityHall, models.StatusInitialRequest)
	record(ActionCompleteVerification, models.RoleArchitectSociety, models.StatusVerificationRequested)
	record(ActionRejectVerification, models.RoleArchitectSociety, models.StatusVerificationRequested)
	record(ActionCompleteRecommendation, models.RoleCityHall, models.StatusVerificationCompleted)
	record(ActionAssignSupervisor, models.RoleDistrictOffice, models.StatusRecommendationCompleted)
	record(ActionSubmitSettlement, models.RoleInspector, models.StatusSupervisorAssigned)
	record(ActionSubmitCompletion, models.RoleInspector, models.StatusSupervisorAssigned)

	actions := []Action{
		ActionUpdateRequest, ActionCancelRequest, ActionInitialReject,
		ActionPreRecommend, ActionRequestVerification, ActionCompleteVerification,
		ActionRejectVerification, ActionCompleteRecommendation, ActionAssignSupervisor,
		ActionSubmitSettlement, ActionSubmitCompletion,
	}

	for _, action := range actions {
		for _, role := range models.Roles {
			for _, from := range models.Statuses {
				_, err := authorize(action, role, from)
				if allowed[key{action, role, from}] {
					assert.NoError(t, err, "%s by %s from %s should be allowed", action, role, from)
					continue
				}
				require.Error(t, err, "%s by %s from %s should be rejected", action, role, from)
				if role != transitionTable[action].Actor {
					assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden),
						"%s by %s from %s should fail on role before state", action, role, from)
				}
			}
		}
	}
}

func TestAuthorize(t *testing.T) {
	t.Run("role is checked before state", func(t *testing.T) {
		// Wrong role in a state the right role could act from.
		_, err := authorize(ActionCompleteVerification, models.RoleCityHall, models.StatusVerificationRequested)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("repeat completion reports already completed", func(t *testing.T) {
		_, err := authorize(ActionSubmitCompletion, models.RoleInspector, models.StatusSupervisorCompleted)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyCompleted))
	})

	t.Run("cancel is rejected from terminal states", func(t *testing.T) {
		for _, status := range []models.Status{models.StatusCancelled, models.StatusSupervisorCompleted} {
			_, err := authorize(ActionCancelRequest, models.RoleDistrictOffice, status)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
		}
	})

	t.Run("settlement does not change status", func(t *testing.T) {
		rule, err := authorize(ActionSubmitSettlement, models.RoleInspector, models.StatusSupervisorAssigned)
		require.NoError(t, err)
		assert.True(t, rule.SameStatus)
	})
}
