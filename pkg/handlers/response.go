// Package handlers implements the HTTP surface. Handlers decode requests,
// call services and translate the shared error taxonomy into HTTP statuses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceError maps a service error onto an HTTP response. Validation,
// not-found, duplicate and storage failures keep their messages; anything
// else is logged under failCode and redacted to a generic 500.
func ServiceError(w http.ResponseWriter, logger *zap.Logger, err error, failCode string) {
	var werr error
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		werr = ErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		werr = ErrorResponse(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, apperrors.ErrDuplicate):
		werr = ErrorResponse(w, http.StatusConflict, "duplicate", err.Error())
	case errors.Is(err, apperrors.ErrStorage):
		logger.Error("Storage failure", zap.Error(err))
		werr = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "File storage failure")
	default:
		logger.Error("Request failed", zap.String("code", failCode), zap.Error(err))
		werr = ErrorResponse(w, http.StatusInternalServerError, failCode, "Internal server error")
	}
	if werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}
