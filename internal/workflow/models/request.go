package models

import (
	"time"

	id "razeflow/pkg/domain"
)

// Status is the closed set of lifecycle states. Keeping it a typed constant
// set means an unhandled state is a compile-time problem, not a fallback label.
type Status string

const (
	StatusInitialRequest          Status = "INITIAL_REQUEST"
	StatusInitialRejected         Status = "INITIAL_REJECTED"
	StatusReRequest               Status = "RE_REQUEST"
	StatusVerificationRequested   Status = "VERIFICATION_REQUESTED"
	StatusVerificationCompleted   Status = "VERIFICATION_COMPLETED"
	StatusVerificationRejected    Status = "VERIFICATION_REJECTED"
	StatusRecommendationCompleted Status = "RECOMMENDATION_COMPLETED"
	StatusSupervisorAssigned      Status = "SUPERVISOR_ASSIGNED"
	StatusSupervisorCompleted     Status = "SUPERVISOR_COMPLETED"
	StatusCancelled               Status = "CANCELLED"
)

// Statuses lists every known lifecycle state, for exhaustive checks and tests.
var Statuses = []Status{
	StatusInitialRequest,
	StatusInitialRejected,
	StatusReRequest,
	StatusVerificationRequested,
	StatusVerificationCompleted,
	StatusVerificationRejected,
	StatusRecommendationCompleted,
	StatusSupervisorAssigned,
	StatusSupervisorCompleted,
	StatusCancelled,
}

// IsTerminal reports whether no further transition may leave this state.
func (s Status) IsTerminal() bool {
	return s == StatusSupervisorCompleted || s == StatusCancelled
}

// IsValid reports whether s is one of the known lifecycle states.
func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// RequestType is fixed at creation and selects which verification entry the
// request may use.
type RequestType string

const (
	TypeRecommendation      RequestType = "RECOMMENDATION"
	TypePriorityDesignation RequestType = "PRIORITY_DESIGNATION"
)

func (t RequestType) IsValid() bool {
	return t == TypeRecommendation || t == TypePriorityDesignation
}

// Role identifies which organization a caller acts for. Every caller carries
// exactly one.
type Role string

const (
	RoleDistrictOffice   Role = "DISTRICT_OFFICE"
	RoleCityHall         Role = "CITY_HALL"
	RoleArchitectSociety Role = "ARCHITECT_SOCIETY"
	RoleInspector        Role = "INSPECTOR"
)

// Roles lists every caller role, for exhaustive checks and tests.
var Roles = []Role{RoleDistrictOffice, RoleCityHall, RoleArchitectSociety, RoleInspector}

func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller as seen by the workflow. SupervisorID is
// set only for inspectors and is matched against the request's bound
// supervisor on settlement and completion.
type Actor struct {
	UserID       id.UserID
	Role         Role
	SupervisorID id.SupervisorID
}

// Site carries the descriptive location/scale attributes. None of these bear
// on transition rules.
type Site struct {
	Region          string  `json:"region"`
	Zone            string  `json:"zone"`
	Address         string  `json:"address"`
	GroundFloors    int     `json:"ground_floors"`
	BasementFloors  int     `json:"basement_floors"`
	TotalFloorArea  float64 `json:"total_floor_area"`
	SiteArea        float64 `json:"site_area"`
	DemolitionScale string  `json:"demolition_scale"`
	DemolitionType  string  `json:"demolition_type"`
}

// DemolitionRequest is the aggregate root. All owned collections live on the
// record; every mutation goes through the workflow service under the
// per-request lock, and stores enforce Version on save.
type DemolitionRequest struct {
	ID            id.RequestID
	RequestNumber string
	Type          RequestType
	Status        Status
	Site          Site

	PriorityDesignation  bool
	PriorityReason       string
	PriorityDesignations []PriorityCandidate

	SupervisorID   id.SupervisorID
	SupervisorName string

	Settlement *SettlementRecord
	Completion *CompletionReport

	AssignmentHistory []AssignmentEvent

	RejectionReason        string
	InitialRejectionReason string
	CancellationReason     string
	RejectionCount         int

	RequestedAt             time.Time
	VerificationRequestedAt time.Time
	VerificationCompletedAt time.Time
	AssignedAt              time.Time
	CompletedAt             time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Editable reports whether the district office may still change the request
// body. Everything past the initial states is read-only to the submitter.
func (r *DemolitionRequest) Editable() bool {
	return r.Status == StatusInitialRequest || r.Status == StatusInitialRejected
}

// SetNegativeReason records the narrative for a negative transition and
// clears the two that no longer apply, keeping at most one reason current.
func (r *DemolitionRequest) SetNegativeReason(status Status, reason string) {
	switch status {
	case StatusInitialRejected:
		r.InitialRejectionReason = reason
		r.RejectionReason = ""
		r.CancellationReason = ""
	case StatusVerificationRejected:
		r.RejectionReason = reason
		r.InitialRejectionReason = ""
		r.CancellationReason = ""
	case StatusCancelled:
		r.CancellationReason = reason
		r.RejectionReason = ""
		r.InitialRejectionReason = ""
	}
}

// MirrorLeadCandidate recomputes the single-supervisor legacy fields from the
// rank-1 candidate. The mirror is derived state, never edited directly.
func (r *DemolitionRequest) MirrorLeadCandidate() {
	if len(r.PriorityDesignations) == 0 {
		r.SupervisorID = id.SupervisorID{}
		r.SupervisorName = ""
		return
	}
	lead := r.PriorityDesignations[0]
	r.SupervisorID = lead.SupervisorRef()
	r.SupervisorName = lead.SupervisorName
}

// AppendAssignment records an assignment event. The history is append-only;
// nothing in the workflow mutates or removes entries once written.
func (r *DemolitionRequest) AppendAssignment(event AssignmentEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.AssignmentHistory = append(r.AssignmentHistory, event)
}

// Clone deep-copies the aggregate so stores can hand out records without
// sharing slices with callers.
func (r *DemolitionRequest) Clone() *DemolitionRequest {
	dup := *r
	dup.PriorityDesignations = append([]PriorityCandidate(nil), r.PriorityDesignations...)
	dup.AssignmentHistory = append([]AssignmentEvent(nil), r.AssignmentHistory...)
	if r.Settlement != nil {
		s := *r.Settlement
		dup.Settlement = &s
	}
	if r.Completion != nil {
		c := *r.Completion
		c.Attachments = append([]string(nil), r.Completion.Attachments...)
		dup.Completion = &c
	}
	return &dup
}
