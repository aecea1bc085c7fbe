// Package shared holds the JSON helpers every handler uses.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "conduct/pkg/domain-errors"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the JSON envelope for all error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError translates a coded domain error into an HTTP response.
// Uncoded errors map to 500 with a generic message so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := statusFor(code)

	message := "internal error"
	var coded *dErrors.Error
	if errors.As(err, &coded) && status < http.StatusInternalServerError {
		message = coded.Message
	}

	WriteJSON(w, status, ErrorResponse{Error: string(code), Message: message})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeInvalidInput, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
