package rest

import (
	"encoding/json"
	"net/http"
)

// APIError is the error response body. The "error" field is the only part
// legacy clients read; code and request_id aid debugging.
type APIError struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error codes for common scenarios
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends a structured error response.
func respondError(w http.ResponseWriter, status int, code, message, requestID string) {
	respondJSON(w, status, APIError{
		Error:     message,
		Code:      code,
		RequestID: requestID,
	})
}
