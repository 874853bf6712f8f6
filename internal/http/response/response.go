// Package response provides standardized HTTP response formatting and error handling utilities.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"

	domainerrors "github.com/cinepick/cinepick-server/internal/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code using json/v2.
// The payload is written as-is: the discover endpoint's documented contract
// is a bare JSON array, not an envelope.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.MarshalWrite(w, data); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, errorBody{Error: message}, logger)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, message, logger)
}

// DomainError writes an error response based on a domain error's code.
// Non-domain errors become generic 500s; internal detail is logged, never
// sent to the caller.
func DomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		switch domainErr.Code {
		case domainerrors.CodeValidation:
			Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
		case domainerrors.CodeNotFound:
			Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
		default:
			Error(w, domainErr.HTTPStatus(), "internal server error", logger)
		}
		return
	}

	InternalError(w, "internal server error", logger)
}
