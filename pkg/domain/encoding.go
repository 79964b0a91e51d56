package domain

import "github.com/google/uuid"

// Text marshaling keeps typed IDs as canonical uuid strings in JSON payloads
// and JSONB columns. Empty text unmarshals to the nil id so optional fields
// round-trip.

func marshalID(u uuid.UUID) ([]byte, error) {
	if u == uuid.Nil {
		return []byte(""), nil
	}
	return []byte(u.String()), nil
}

func unmarshalID(text []byte) (uuid.UUID, error) {
	if len(text) == 0 {
		return uuid.Nil, nil
	}
	return uuid.ParseBytes(text)
}

func (id RequestID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id *RequestID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = RequestID(u)
	return err
}

func (id UserID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id *UserID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = UserID(u)
	return err
}

func (id ApplicantID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id *ApplicantID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = ApplicantID(u)
	return err
}

func (id SupervisorID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id *SupervisorID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = SupervisorID(u)
	return err
}

func (id AttachmentID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id *AttachmentID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = AttachmentID(u)
	return err
}
