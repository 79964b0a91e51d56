package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error. Services attach codes so transport layers can
// translate without inspecting message text.
type Code string

const (
	CodeBadRequest             Code = "bad_request"
	CodeValidation             Code = "validation"
	CodeUnauthorized           Code = "unauthorized"
	CodeForbidden              Code = "forbidden"
	CodeNotFound               Code = "not_found"
	CodeConflict               Code = "conflict"
	CodeInvalidTransition      Code = "invalid_transition"
	CodeSettlementRequired     Code = "settlement_required"
	CodeAttachmentsRequired    Code = "attachments_required"
	CodeAlreadyCompleted       Code = "already_completed"
	CodeCandidateListFull      Code = "candidate_list_full"
	CodeDuplicateCandidate     Code = "duplicate_candidate"
	CodeConcurrentModification Code = "concurrent_modification"
	CodeInternal               Code = "internal"
)

// Error is the coded error carried between services and transports. Field is
// set for validation errors so callers can render a field-specific message.
type Error struct {
	Code    Code
	Message string
	Field   string
	wrapped error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// chain for errors.Is/As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, wrapped: err}
}

// Validation builds a field-specific validation error.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.wrapped
		if err == nil {
			return false
		}
	}
	return false
}

// Field returns the offending field of the first coded error in the chain, or
// "" when none is recorded.
func Field(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}

// ToHTTPStatus maps a code onto the HTTP status a transport should answer with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeAttachmentsRequired:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidTransition, CodeSettlementRequired,
		CodeAlreadyCompleted, CodeCandidateListFull, CodeDuplicateCandidate,
		CodeConcurrentModification:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
