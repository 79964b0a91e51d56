// Package httputil centralizes the JSON envelope and domain-error
// translation so every handler answers the same shape.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "razeflow/pkg/domain-errors"
)

// ErrorResponse is the error envelope. Field is set for validation errors so
// the UI can attach the message to the offending input.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the HTTP envelope. Unknown errors
// become opaque 500s; messages of coded errors are safe to surface.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
		return
	}
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), ErrorResponse{
		Error:   string(de.Code),
		Message: de.Message,
		Field:   de.Field,
	})
}
