package audit

import (
	"time"

	"razeflow/internal/workflow/models"
	id "razeflow/pkg/domain"
)

// Outcome labels whether the recorded action succeeded.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// Event is the operational audit record for one workflow action. The
// aggregate keeps its own assignment history; this trail additionally covers
// rejected attempts and non-assignment transitions, and is shipped to the
// audit topic by a sink.
type Event struct {
	Timestamp     time.Time     `json:"timestamp"`
	RequestID     id.RequestID  `json:"request_id"`
	RequestNumber string        `json:"request_number,omitempty"`
	ActorID       id.UserID     `json:"actor_id"`
	Role          models.Role   `json:"role"`
	Action        string        `json:"action"`
	FromStatus    models.Status `json:"from_status,omitempty"`
	ToStatus      models.Status `json:"to_status,omitempty"`
	Outcome       Outcome       `json:"outcome"`
	Reason        string        `json:"reason,omitempty"`
}
