package handler

import (
	"time"

	"razeflow/internal/workflow/models"
)

// requestResponse is the aggregate as the API presents it. Zero timestamps
// are omitted rather than rendered as the epoch.
type requestResponse struct {
	ID                      string                     `json:"id"`
	RequestNumber           string                     `json:"request_number"`
	RequestType             string                     `json:"request_type"`
	Status                  string                     `json:"status"`
	Site                    models.Site                `json:"site"`
	PriorityDesignation     bool                       `json:"priority_designation"`
	PriorityReason          string                     `json:"priority_reason,omitempty"`
	PriorityDesignations    []models.PriorityCandidate `json:"priority_designations,omitempty"`
	SupervisorID            string                     `json:"supervisor_id,omitempty"`
	SupervisorName          string                     `json:"supervisor_name,omitempty"`
	Settlement              *models.SettlementRecord   `json:"settlement,omitempty"`
	Completion              *models.CompletionReport   `json:"completion,omitempty"`
	RejectionReason         string                     `json:"rejection_reason,omitempty"`
	InitialRejectionReason  string                     `json:"initial_rejection_reason,omitempty"`
	CancellationReason      string                     `json:"cancellation_reason,omitempty"`
	RejectionCount          int                        `json:"rejection_count"`
	RequestedAt             *time.Time                 `json:"requested_at,omitempty"`
	VerificationRequestedAt *time.Time                 `json:"verification_requested_at,omitempty"`
	VerificationCompletedAt *time.Time                 `json:"verification_completed_at,omitempty"`
	AssignedAt              *time.Time                 `json:"assigned_at,omitempty"`
	CompletedAt             *time.Time                 `json:"completed_at,omitempty"`
	Version                 int                        `json:"version"`
}

type historyResponse struct {
	Events []models.AssignmentEvent `json:"events"`
}

func toRequestResponse(request *models.DemolitionRequest) requestResponse {
	resp := requestResponse{
		ID:                     request.ID.String(),
		RequestNumber:          request.RequestNumber,
		RequestType:            string(request.Type),
		Status:                 string(request.Status),
		Site:                   request.Site,
		PriorityDesignation:    request.PriorityDesignation,
		PriorityReason:         request.PriorityReason,
		PriorityDesignations:   request.PriorityDesignations,
		SupervisorName:         request.SupervisorName,
		Settlement:             request.Settlement,
		Completion:             request.Completion,
		RejectionReason:        request.RejectionReason,
		InitialRejectionReason: request.InitialRejectionReason,
		CancellationReason:     request.CancellationReason,
		RejectionCount:         request.RejectionCount,
		Version:                request.Version,
	}
	if !request.SupervisorID.IsNil() {
		resp.SupervisorID = request.SupervisorID.String()
	}
	resp.RequestedAt = optionalTime(request.RequestedAt)
	resp.VerificationRequestedAt = optionalTime(request.VerificationRequestedAt)
	resp.VerificationCompletedAt = optionalTime(request.VerificationCompletedAt)
	resp.AssignedAt = optionalTime(request.AssignedAt)
	resp.CompletedAt = optionalTime(request.CompletedAt)
	return resp
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
