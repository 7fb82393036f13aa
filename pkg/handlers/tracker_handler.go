package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// TrackerRequest is the JSON body for creating or replacing a database
// tracker.
type TrackerRequest struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Status          string `json:"status"`
	TablesCount     int    `json:"tables_count"`
	MigrationsCount int    `json:"migrations_count"`
	MigrationsJSON  string `json:"migrations_json"`
}

func (req *TrackerRequest) toModel() *models.DatabaseTracker {
	return &models.DatabaseTracker{
		Name:            req.Name,
		Version:         req.Version,
		Status:          req.Status,
		TablesCount:     req.TablesCount,
		MigrationsCount: req.MigrationsCount,
		MigrationsJSON:  req.MigrationsJSON,
	}
}

// TrackerStatusRequest is the PATCH body for tracker status changes.
type TrackerStatusRequest struct {
	Status string `json:"status"`
}

// TrackerHandler handles database tracker HTTP requests. Trackers use
// serial integer ids and owner-scoped access like deployments.
type TrackerHandler struct {
	trackerService services.TrackerService
	limits         pagination.Limits
	logger         *zap.Logger
}

// NewTrackerHandler creates a new database tracker handler.
func NewTrackerHandler(trackerService services.TrackerService, limits pagination.Limits, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{
		trackerService: trackerService,
		limits:         limits,
		logger:         logger,
	}
}

// RegisterRoutes registers the database tracker routes on the given mux.
func (h *TrackerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/database-trackers", h.Create)
	mux.HandleFunc("GET /api/database-trackers", h.List)
	mux.HandleFunc("GET /api/database-trackers/{id}", h.Get)
	mux.HandleFunc("PUT /api/database-trackers/{id}", h.Update)
	mux.HandleFunc("PATCH /api/database-trackers/{id}/status", h.UpdateStatus)
	mux.HandleFunc("DELETE /api/database-trackers/{id}", h.Delete)
	mux.HandleFunc("GET /api/database-trackers/name/{name}", h.GetByName)
	mux.HandleFunc("GET /api/database-trackers/status/{status}", h.ListByStatus)
	mux.HandleFunc("GET /api/database-trackers/version/{version}", h.ListByVersion)
}

// Create handles POST /api/database-trackers
func (h *TrackerHandler) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req TrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	t, err := h.trackerService.Create(r.Context(), employeeID, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_tracker_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, t); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/database-trackers/{id}
func (h *TrackerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseNumericID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	t, err := h.trackerService.Get(r.Context(), id, employeeID)
	if err != nil {
		ServiceError(w, h.logger, err, "get_tracker_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, t); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByName handles GET /api/database-trackers/name/{name}
func (h *TrackerHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	t, err := h.trackerService.GetByName(r.Context(), r.PathValue("name"))
	if err != nil {
		ServiceError(w, h.logger, err, "get_tracker_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, t); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/database-trackers/{id}
func (h *TrackerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseNumericID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req TrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	t, err := h.trackerService.Update(r.Context(), id, employeeID, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_tracker_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, t); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateStatus handles PATCH /api/database-trackers/{id}/status
func (h *TrackerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseNumericID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req TrackerStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	t, err := h.trackerService.UpdateStatus(r.Context(), id, employeeID, req.Status)
	if err != nil {
		ServiceError(w, h.logger, err, "update_tracker_status_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, t); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/database-trackers/{id}
func (h *TrackerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseNumericID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.trackerService.Delete(r.Context(), id, employeeID); err != nil {
		ServiceError(w, h.logger, err, "delete_tracker_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/database-trackers, scoped to the calling employee.
func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.TrackerSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.trackerService.List(r.Context(), employeeID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_trackers_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByStatus handles GET /api/database-trackers/status/{status}
func (h *TrackerHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.TrackerSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.trackerService.ListByStatus(r.Context(), r.PathValue("status"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_trackers_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByVersion handles GET /api/database-trackers/version/{version}
func (h *TrackerHandler) ListByVersion(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.TrackerSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.trackerService.ListByVersion(r.Context(), r.PathValue("version"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_trackers_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
