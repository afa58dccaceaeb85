package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Stable error codes returned by the admin API.
const (
	// Authentication (AUTH_*)
	ErrInvalidToken      = "AUTH_001" // bearer token missing or wrong
	ErrAdminTokenMissing = "AUTH_002" // daemon started without an admin token

	// Validation (VAL_*)
	ErrInvalidRequest = "VAL_001"
	ErrJobNotFound    = "VAL_002" // unknown report job name

	// Server (SRV_*)
	ErrInternalServer = "SRV_001"
)

var httpStatusMap = map[string]int{
	ErrInvalidToken:      http.StatusUnauthorized,
	ErrAdminTokenMissing: http.StatusForbidden,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrJobNotFound:       http.StatusNotFound,
	ErrInternalServer:    http.StatusInternalServerError,
}

// APIError is the JSON error envelope every admin endpoint returns.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standardized error response. Unknown codes fall back
// to 500 rather than leaking a zero status.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
