package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// EnvironmentRequest is the JSON body for creating or replacing an
// environment.
type EnvironmentRequest struct {
	Name             string `json:"name"`
	Status           string `json:"status"`
	DeploymentsCount string `json:"deployments_count"`
	LastUpdate       string `json:"last_update"`
}

func (req *EnvironmentRequest) toModel() *models.Environment {
	return &models.Environment{
		Name:             req.Name,
		Status:           req.Status,
		DeploymentsCount: req.DeploymentsCount,
		LastUpdate:       req.LastUpdate,
	}
}

// EnvironmentHandler handles environment HTTP requests.
type EnvironmentHandler struct {
	environmentService services.EnvironmentService
	limits             pagination.Limits
	logger             *zap.Logger
}

// NewEnvironmentHandler creates a new environment handler.
func NewEnvironmentHandler(environmentService services.EnvironmentService, limits pagination.Limits, logger *zap.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{
		environmentService: environmentService,
		limits:             limits,
		logger:             logger,
	}
}

// RegisterRoutes registers the environment routes on the given mux.
func (h *EnvironmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/environments", h.Create)
	mux.HandleFunc("GET /api/environments", h.List)
	mux.HandleFunc("GET /api/environments/{id}", h.Get)
	mux.HandleFunc("PUT /api/environments/{id}", h.Update)
	mux.HandleFunc("DELETE /api/environments/{id}", h.Delete)
	mux.HandleFunc("GET /api/environments/name/{name}", h.GetByName)
	mux.HandleFunc("GET /api/environments/status/{status}", h.ListByStatus)
}

// Create handles POST /api/environments
func (h *EnvironmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req EnvironmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	env, err := h.environmentService.Create(r.Context(), employeeID, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_environment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, env); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/environments/{id}
func (h *EnvironmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	env, err := h.environmentService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_environment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, env); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByName handles GET /api/environments/name/{name}
func (h *EnvironmentHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	env, err := h.environmentService.GetByName(r.Context(), r.PathValue("name"))
	if err != nil {
		ServiceError(w, h.logger, err, "get_environment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, env); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/environments/{id}
func (h *EnvironmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req EnvironmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	env, err := h.environmentService.Update(r.Context(), id, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_environment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, env); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/environments/{id}
func (h *EnvironmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.environmentService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_environment_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/environments
func (h *EnvironmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EnvironmentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.environmentService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_environments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByStatus handles GET /api/environments/status/{status}
func (h *EnvironmentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EnvironmentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.environmentService.ListByStatus(r.Context(), r.PathValue("status"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_environments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
