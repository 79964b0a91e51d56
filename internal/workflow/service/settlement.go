package service

import (
	"context"
	"time"

	"razeflow/internal/workflow/models"
	id "razeflow/pkg/domain"
	dErrors "razeflow/pkg/domain-errors"
)

// SettlementInput is the inspector's settlement payload. Submitting is the
// act of settling; there is no separate confirmation step.
type SettlementInput struct {
	SupervisionFee     float64
	PaymentAmount      float64
	ContractAmount     float64
	AssociationFee     float64
	ContractorName     string
	PaymentCompleted   bool
	PaymentCompletedAt *time.Time
}

// SubmitSettlement files or corrects the settlement while the request stays
// SUPERVISOR_ASSIGNED. Re-editing replaces the record and never unsets
// settled.
func (s *Service) SubmitSettlement(ctx context.Context, actor models.Actor, requestID id.RequestID, input SettlementInput) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionSubmitSettlement, actor, requestID, func(request *models.DemolitionRequest) error {
		if err := requireBoundSupervisor(request, actor); err != nil {
			return err
		}

		now := time.Now()
		record := models.SettlementRecord{
			SupervisionFee:     input.SupervisionFee,
			PaymentAmount:      input.PaymentAmount,
			ContractAmount:     input.ContractAmount,
			AssociationFee:     input.AssociationFee,
			ContractorName:     input.ContractorName,
			PaymentCompleted:   input.PaymentCompleted,
			PaymentCompletedAt: input.PaymentCompletedAt,
			Settled:            true,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if request.Settlement != nil {
			record.CreatedAt = request.Settlement.CreatedAt
		}
		if err := record.Validate(); err != nil {
			return err
		}
		request.Settlement = &record
		return nil
	})
}

// SubmitCompletion files the completion report and closes the request. The
// settlement gate and the attachment requirement are checked here, after role
// and state: a second submission surfaces as AlreadyCompleted from the
// transition table.
func (s *Service) SubmitCompletion(ctx context.Context, actor models.Actor, requestID id.RequestID, attachmentHandles []string, narrative string) (*models.DemolitionRequest, error) {
	return s.transition(ctx, ActionSubmitCompletion, actor, requestID, func(request *models.DemolitionRequest) error {
		if err := requireBoundSupervisor(request, actor); err != nil {
			return err
		}
		if request.Settlement == nil || !request.Settlement.Settled {
			return dErrors.New(dErrors.CodeSettlementRequired, "settlement must be settled before filing a completion report")
		}
		if len(attachmentHandles) == 0 {
			return dErrors.New(dErrors.CodeAttachmentsRequired, "completion report requires at least one attachment")
		}
		if s.attachments != nil {
			for _, handle := range attachmentHandles {
				exists, err := s.attachments.Exists(ctx, handle)
				if err != nil {
					return dErrors.Wrap(err, dErrors.CodeInternal, "attachment store lookup failed")
				}
				if !exists {
					return dErrors.Validation("attachments", "unknown attachment handle "+handle)
				}
			}
		}

		now := time.Now()
		request.Completion = &models.CompletionReport{
			Attachments:        append([]string(nil), attachmentHandles...),
			SupervisionContent: narrative,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		request.AppendAssignment(models.AssignmentEvent{
			Type:           models.AssignmentCompleted,
			SupervisorID:   request.SupervisorID,
			SupervisorName: request.SupervisorName,
		})
		return nil
	})
}

// requireBoundSupervisor ensures the calling inspector is the supervisor the
// request is bound to.
func requireBoundSupervisor(request *models.DemolitionRequest, actor models.Actor) error {
	if actor.SupervisorID.IsNil() || actor.SupervisorID != request.SupervisorID {
		return dErrors.New(dErrors.CodeForbidden, "only the assigned supervisor may act on this request")
	}
	return nil
}
