// Package candidates holds the priority-designation ranking rules. Everything
// here is pure list manipulation; persistence and locking stay with the
// workflow service.
package candidates

import (
	"razeflow/internal/workflow/models"
	dErrors "razeflow/pkg/domain-errors"
)

// MaxCandidates caps the ranking at five nominations per request.
const MaxCandidates = 5

// Direction is the move direction for Move. Up means toward order 1.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func (d Direction) IsValid() bool {
	return d == DirectionUp || d == DirectionDown
}

// Add appends a nomination at the end of the ranking. The list never exceeds
// MaxCandidates and never holds two nominations for the same supervisor, on
// either identifier.
func Add(list []models.PriorityCandidate, candidate models.PriorityCandidate) ([]models.PriorityCandidate, error) {
	if !candidate.Identified() {
		return nil, dErrors.Validation("candidate", "must carry an applicant_id or user_id")
	}
	if len(list) >= MaxCandidates {
		return nil, dErrors.Newf(dErrors.CodeCandidateListFull, "candidate list already holds %d entries", MaxCandidates)
	}
	for _, existing := range list {
		if existing.SharesIdentity(candidate) {
			return nil, dErrors.New(dErrors.CodeDuplicateCandidate, "supervisor already nominated on this request")
		}
	}
	candidate.Order = len(list) + 1
	out := append(append([]models.PriorityCandidate(nil), list...), candidate)
	return out, nil
}

// Remove drops the entry at the given rank and renumbers the remainder so
// orders stay contiguous from 1.
func Remove(list []models.PriorityCandidate, order int) ([]models.PriorityCandidate, error) {
	if order < 1 || order > len(list) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no candidate at order %d", order)
	}
	out := make([]models.PriorityCandidate, 0, len(list)-1)
	out = append(out, list[:order-1]...)
	out = append(out, list[order:]...)
	renumber(out)
	return out, nil
}

// Move swaps the entry at the given rank with its neighbor. Moving the first
// entry up or the last entry down is a no-op, not an error.
func Move(list []models.PriorityCandidate, order int, direction Direction) ([]models.PriorityCandidate, error) {
	if !direction.IsValid() {
		return nil, dErrors.Validation("direction", `must be "up" or "down"`)
	}
	if order < 1 || order > len(list) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no candidate at order %d", order)
	}
	out := append([]models.PriorityCandidate(nil), list...)
	i := order - 1
	switch direction {
	case DirectionUp:
		if i == 0 {
			return out, nil
		}
		out[i-1], out[i] = out[i], out[i-1]
	case DirectionDown:
		if i == len(out)-1 {
			return out, nil
		}
		out[i], out[i+1] = out[i+1], out[i]
	}
	renumber(out)
	return out, nil
}

func renumber(list []models.PriorityCandidate) {
	for i := range list {
		list[i].Order = i + 1
	}
}
