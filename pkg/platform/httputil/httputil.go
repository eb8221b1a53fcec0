// Package httputil centralizes JSON response writing so every handler emits
// the same envelope. Errors carry {"error": code, "error_description": detail};
// internal errors omit the description to avoid leaking infrastructure detail.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "sangamsetu/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard JSON error envelope.
// Uncoded errors are reported as internal_error.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	description := ""

	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		description = de.Message
	}

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal && description != "" {
		body["error_description"] = description
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
