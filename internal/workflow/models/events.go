package models

import (
	"time"

	id "razeflow/pkg/domain"
)

// AssignmentEventType labels an entry in the assignment history.
type AssignmentEventType string

const (
	AssignmentSelected  AssignmentEventType = "SELECTED"
	AssignmentReleased  AssignmentEventType = "RELEASED"
	AssignmentConfirmed AssignmentEventType = "CONFIRMED"
	AssignmentCompleted AssignmentEventType = "COMPLETED"
)

// AssignmentEvent is one append-only entry in the aggregate's assignment
// history. Supervisor fields may be empty for a RELEASED event with no
// successor.
type AssignmentEvent struct {
	Type           AssignmentEventType `json:"type"`
	SupervisorID   id.SupervisorID     `json:"supervisor_id,omitempty"`
	SupervisorName string              `json:"supervisor_name,omitempty"`
	Reason         string              `json:"reason,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
