package domain

import (
	"github.com/google/uuid"

	dErrors "razeflow/pkg/domain-errors"
)

// Typed IDs keep the aggregate's identifiers from being swapped for one
// another at compile time. Parse at trust boundaries; everything past the
// handler works with the typed form.
type (
	RequestID    uuid.UUID
	UserID       uuid.UUID
	ApplicantID  uuid.UUID
	SupervisorID uuid.UUID
	AttachmentID uuid.UUID
)

func NewRequestID() RequestID { return RequestID(uuid.New()) }

func (id RequestID) String() string    { return uuid.UUID(id).String() }
func (id RequestID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id ApplicantID) String() string  { return uuid.UUID(id).String() }
func (id ApplicantID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SupervisorID) String() string { return uuid.UUID(id).String() }
func (id SupervisorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AttachmentID) String() string { return uuid.UUID(id).String() }
func (id AttachmentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func parse(field, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Validation(field, "must not be empty")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Validation(field, "must be a valid uuid")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Validation(field, "must not be the nil uuid")
	}
	return u, nil
}

func ParseRequestID(raw string) (RequestID, error) {
	u, err := parse("request_id", raw)
	return RequestID(u), err
}

func ParseUserID(raw string) (UserID, error) {
	u, err := parse("user_id", raw)
	return UserID(u), err
}

func ParseApplicantID(raw string) (ApplicantID, error) {
	u, err := parse("applicant_id", raw)
	return ApplicantID(u), err
}

func ParseSupervisorID(raw string) (SupervisorID, error) {
	u, err := parse("supervisor_id", raw)
	return SupervisorID(u), err
}

func ParseAttachmentID(raw string) (AttachmentID, error) {
	u, err := parse("attachment_id", raw)
	return AttachmentID(u), err
}
