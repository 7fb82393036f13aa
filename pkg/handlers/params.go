package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
)

// ParseID extracts and validates the {id} path parameter as a UUID. Returns
// the parsed UUID and true on success, or uuid.Nil and false after writing
// an error response.
func ParseID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "id", "invalid_id", "Invalid ID format", logger)
}

// ParseNumericID extracts the {id} path parameter as an int64, for the
// serial-keyed resources.
func ParseNumericID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}
	return id, true
}

// RequireEmployeeID reads the mandatory employeeId query parameter used by
// the owner-scoped resources.
func RequireEmployeeID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("employeeId")
	if raw == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_employee_id", "employeeId query parameter is required"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_employee_id", "Invalid employee ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}

// OptionalEmployeeID reads the employeeId query parameter when present.
// Returns nil when the parameter was omitted.
func OptionalEmployeeID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("employeeId")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_employee_id", "Invalid employee ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}
	return &id, true
}

// ParsePage reads page/size/sort against a sort whitelist, writing a 400
// naming the valid sort fields on failure.
func ParsePage(w http.ResponseWriter, r *http.Request, limits pagination.Limits, allowed map[string]string, defaultSort string, logger *zap.Logger) (pagination.Request, bool) {
	page, err := pagination.Parse(r.URL.Query(), limits, allowed, defaultSort)
	if err != nil {
		ServiceError(w, logger, err, "invalid_page_request")
		return pagination.Request{}, false
	}
	return page, true
}

// parseUUID is the internal helper that does the actual parsing work.
func parseUUID(w http.ResponseWriter, r *http.Request, pathParam, errorCode, errorMessage string, logger *zap.Logger) (uuid.UUID, bool) {
	idStr := r.PathValue(pathParam)
	id, err := uuid.Parse(idStr)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, errorCode, errorMessage); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}
