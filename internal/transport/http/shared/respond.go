// Package shared holds the JSON response helpers used by every handler so the
// error envelope stays uniform across slices.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "perspective/pkg/domain-errors"
)

// RespondJSON writes v as the JSON response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard error envelope.
// Errors without a domain code are reported as internal.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := "internal error"

	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
	}

	RespondJSON(w, dErrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": message,
	})
}
