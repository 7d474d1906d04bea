// Package response defines the versioned JSON envelope every API response
// is wrapped in, and helpers for writing it from plain HTTP handlers.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/pagetrail/pagetrail-server/internal/errors"
)

// Version is the envelope format version sent as "v".
const Version = 1

// Envelope is the body of a successful response.
type Envelope struct {
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorEnvelope is the body of a failed response.
type ErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Wrap builds a success envelope around data.
func Wrap(data any) Envelope {
	return Envelope{Version: Version, Success: true, Data: data}
}

// Fail builds an error envelope.
func Fail(code domainerrors.Code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{
		Version: Version,
		Success: false,
		Error:   message,
		Code:    string(code),
		Details: details,
	}
}

// JSON writes body with the given status code.
func JSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil && logger != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// Error writes an error envelope for a domain error code.
func Error(w http.ResponseWriter, code domainerrors.Code, message string, logger *slog.Logger) {
	JSON(w, code.HTTPStatus(), Fail(code, message, nil), logger)
}

// TooManyRequests writes a 429 response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.CodeRateLimited, message, logger)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.CodeInternal, message, logger)
}
