package models

import (
	"github.com/google/uuid"

	id "razeflow/pkg/domain"
)

// PriorityCandidate is one ranked nomination on a priority-designation
// request. Name, license and birthdate are a snapshot taken at nomination
// time; they are deliberately not re-fetched, so the historical nomination
// stays stable even if the supervisor's profile changes later.
type PriorityCandidate struct {
	Order               int            `json:"order"`
	ApplicantID         id.ApplicantID `json:"applicant_id,omitempty"`
	UserID              id.UserID      `json:"user_id,omitempty"`
	SupervisorName      string         `json:"supervisor_name,omitempty"`
	SupervisorLicense   string         `json:"supervisor_license,omitempty"`
	SupervisorBirthdate string         `json:"supervisor_birthdate,omitempty"`
}

// Identified reports whether the candidate names a supervisor at all. At
// least one of applicant id and user id must be present.
func (c PriorityCandidate) Identified() bool {
	return !c.ApplicantID.IsNil() || !c.UserID.IsNil()
}

// SupervisorRef resolves the candidate to a supervisor reference. The user
// account id is preferred; the applicant record id is the fallback for
// nominations filed before the supervisor registered an account.
func (c PriorityCandidate) SupervisorRef() id.SupervisorID {
	if !c.UserID.IsNil() {
		return id.SupervisorID(uuid.UUID(c.UserID))
	}
	return id.SupervisorID(uuid.UUID(c.ApplicantID))
}

// SharesIdentity reports whether two candidates nominate the same supervisor,
// matching on either identifier.
func (c PriorityCandidate) SharesIdentity(other PriorityCandidate) bool {
	if !c.ApplicantID.IsNil() && c.ApplicantID == other.ApplicantID {
		return true
	}
	if !c.UserID.IsNil() && c.UserID == other.UserID {
		return true
	}
	return false
}
