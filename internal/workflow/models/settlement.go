package models

import (
	"math"
	"time"

	dErrors "razeflow/pkg/domain-errors"
)

// SettlementRecord is the financial record the inspector files while the
// request is SUPERVISOR_ASSIGNED. Settled gates completion-report submission;
// PaymentCompleted only describes the money flow and gates nothing.
type SettlementRecord struct {
	SupervisionFee     float64    `json:"supervision_fee"`
	PaymentAmount      float64    `json:"payment_amount"`
	ContractAmount     float64    `json:"contract_amount"`
	AssociationFee     float64    `json:"association_fee"`
	ContractorName     string     `json:"contractor_name"`
	PaymentCompleted   bool       `json:"payment_completed"`
	PaymentCompletedAt *time.Time `json:"payment_completed_at,omitempty"`
	Settled            bool       `json:"settled"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Validate checks the field-level invariants. Errors name the offending field.
func (s SettlementRecord) Validate() error {
	amounts := []struct {
		field string
		value float64
	}{
		{"supervision_fee", s.SupervisionFee},
		{"payment_amount", s.PaymentAmount},
		{"contract_amount", s.ContractAmount},
		{"association_fee", s.AssociationFee},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return dErrors.Validation(a.field, "must be a finite amount")
		}
		if a.value <= 0 {
			return dErrors.Validation(a.field, "must be greater than zero")
		}
	}
	if s.ContractorName == "" {
		return dErrors.Validation("contractor_name", "must not be empty")
	}
	if s.PaymentCompleted && s.PaymentCompletedAt == nil {
		return dErrors.Validation("payment_completed_at", "required when payment_completed is true")
	}
	return nil
}

// CompletionReport is the inspector's final deliverable. It can only come
// into existence after the settlement is marked settled.
type CompletionReport struct {
	Attachments        []string  `json:"attachments"`
	SupervisionContent string    `json:"supervision_content,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
