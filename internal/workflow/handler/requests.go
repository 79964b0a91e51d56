package handler

import (
	"time"

	"razeflow/internal/workflow/models"
	"razeflow/internal/workflow/service"
	id "razeflow/pkg/domain"
)

type createRequestBody struct {
	RequestType         string      `json:"request_type"`
	Site                models.Site `json:"site"`
	PriorityDesignation bool        `json:"priority_designation"`
	PriorityReason      string      `json:"priority_reason"`
}

func (b createRequestBody) toInput() service.CreateInput {
	return service.CreateInput{
		Type:                models.RequestType(b.RequestType),
		Site:                b.Site,
		PriorityDesignation: b.PriorityDesignation,
		PriorityReason:      b.PriorityReason,
	}
}

type reasonBody struct {
	Reason string `json:"reason"`
}

type assignBody struct {
	SupervisorID   string `json:"supervisor_id,omitempty"`
	SupervisorName string `json:"supervisor_name,omitempty"`
}

func (b assignBody) toInput() (service.AssignInput, error) {
	input := service.AssignInput{SupervisorName: b.SupervisorName}
	if b.SupervisorID != "" {
		supervisorID, err := id.ParseSupervisorID(b.SupervisorID)
		if err != nil {
			return service.AssignInput{}, err
		}
		input.SupervisorID = supervisorID
	}
	return input, nil
}

type settlementBody struct {
	SupervisionFee     float64    `json:"supervision_fee"`
	PaymentAmount      float64    `json:"payment_amount"`
	ContractAmount     float64    `json:"contract_amount"`
	AssociationFee     float64    `json:"association_fee"`
	ContractorName     string     `json:"contractor_name"`
	PaymentCompleted   bool       `json:"payment_completed"`
	PaymentCompletedAt *time.Time `json:"payment_completed_at,omitempty"`
}

func (b settlementBody) toInput() service.SettlementInput {
	return service.SettlementInput{
		SupervisionFee:     b.SupervisionFee,
		PaymentAmount:      b.PaymentAmount,
		ContractAmount:     b.ContractAmount,
		AssociationFee:     b.AssociationFee,
		ContractorName:     b.ContractorName,
		PaymentCompleted:   b.PaymentCompleted,
		PaymentCompletedAt: b.PaymentCompletedAt,
	}
}

type completionBody struct {
	Attachments        []string `json:"attachments"`
	SupervisionContent string   `json:"supervision_content,omitempty"`
}

type candidateBody struct {
	ApplicantID         string `json:"applicant_id,omitempty"`
	UserID              string `json:"user_id,omitempty"`
	SupervisorName      string `json:"supervisor_name,omitempty"`
	SupervisorLicense   string `json:"supervisor_license,omitempty"`
	SupervisorBirthdate string `json:"supervisor_birthdate,omitempty"`
}

func (b candidateBody) toCandidate() (models.PriorityCandidate, error) {
	candidate := models.PriorityCandidate{
		SupervisorName:      b.SupervisorName,
		SupervisorLicense:   b.SupervisorLicense,
		SupervisorBirthdate: b.SupervisorBirthdate,
	}
	if b.ApplicantID != "" {
		applicantID, err := id.ParseApplicantID(b.ApplicantID)
		if err != nil {
			return models.PriorityCandidate{}, err
		}
		candidate.ApplicantID = applicantID
	}
	if b.UserID != "" {
		userID, err := id.ParseUserID(b.UserID)
		if err != nil {
			return models.PriorityCandidate{}, err
		}
		candidate.UserID = userID
	}
	return candidate, nil
}

type moveBody struct {
	Direction string `json:"direction"`
}
