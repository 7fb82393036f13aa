package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// DeploymentRequest is the JSON body for creating or replacing a deployment.
type DeploymentRequest struct {
	Name        string     `json:"name"`
	Environment string     `json:"environment"`
	Status      string     `json:"status"`
	Version     string     `json:"version"`
	DeployedAt  *time.Time `json:"deployed_at"`
	Branch      string     `json:"branch"`
	CommitHash  string     `json:"commit_hash"`
	Health      string     `json:"health"`
	Progress    string     `json:"progress"`
}

func (req *DeploymentRequest) toModel() *models.Deployment {
	return &models.Deployment{
		Name:        req.Name,
		Environment: req.Environment,
		Status:      req.Status,
		Version:     req.Version,
		DeployedAt:  req.DeployedAt,
		Branch:      req.Branch,
		CommitHash:  req.CommitHash,
		Health:      req.Health,
		Progress:    req.Progress,
	}
}

// DeploymentHandler handles deployment HTTP requests. Every owner-scoped
// route requires the employeeId query parameter.
type DeploymentHandler struct {
	deploymentService services.DeploymentService
	limits            pagination.Limits
	logger            *zap.Logger
}

// NewDeploymentHandler creates a new deployment handler.
func NewDeploymentHandler(deploymentService services.DeploymentService, limits pagination.Limits, logger *zap.Logger) *DeploymentHandler {
	return &DeploymentHandler{
		deploymentService: deploymentService,
		limits:            limits,
		logger:            logger,
	}
}

// RegisterRoutes registers the deployment routes on the given mux.
func (h *DeploymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/deployments", h.Create)
	mux.HandleFunc("GET /api/deployments", h.List)
	mux.HandleFunc("GET /api/deployments/{id}", h.Get)
	mux.HandleFunc("PUT /api/deployments/{id}", h.Update)
	mux.HandleFunc("PATCH /api/deployments/{id}", h.Patch)
	mux.HandleFunc("DELETE /api/deployments/{id}", h.Delete)
	mux.HandleFunc("GET /api/deployments/environment/{environment}", h.ListByEnvironment)
	mux.HandleFunc("GET /api/deployments/status/{status}", h.ListByStatus)
	mux.HandleFunc("GET /api/deployments/health/{health}", h.ListByHealth)
	mux.HandleFunc("GET /api/deployments/version/{version}", h.ListByVersion)
}

// Create handles POST /api/deployments
func (h *DeploymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req DeploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dep, err := h.deploymentService.Create(r.Context(), employeeID, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_deployment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, dep); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/deployments/{id}
func (h *DeploymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	dep, err := h.deploymentService.Get(r.Context(), id, employeeID)
	if err != nil {
		ServiceError(w, h.logger, err, "get_deployment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, dep); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/deployments/{id}
func (h *DeploymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req DeploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dep, err := h.deploymentService.Update(r.Context(), id, employeeID, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_deployment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, dep); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Patch handles PATCH /api/deployments/{id}
func (h *DeploymentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var upd models.DeploymentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dep, err := h.deploymentService.Patch(r.Context(), id, employeeID, &upd)
	if err != nil {
		ServiceError(w, h.logger, err, "patch_deployment_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, dep); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/deployments/{id}
func (h *DeploymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.deploymentService.Delete(r.Context(), id, employeeID); err != nil {
		ServiceError(w, h.logger, err, "delete_deployment_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/deployments, scoped to the calling employee.
func (h *DeploymentHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := RequireEmployeeID(w, r, h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.DeploymentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.deploymentService.List(r.Context(), employeeID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_deployments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByEnvironment handles GET /api/deployments/environment/{environment}
func (h *DeploymentHandler) ListByEnvironment(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.DeploymentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.deploymentService.ListByEnvironment(r.Context(), r.PathValue("environment"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_deployments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByStatus handles GET /api/deployments/status/{status}
func (h *DeploymentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.DeploymentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.deploymentService.ListByStatus(r.Context(), r.PathValue("status"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_deployments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByHealth handles GET /api/deployments/health/{health}
func (h *DeploymentHandler) ListByHealth(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.DeploymentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.deploymentService.ListByHealth(r.Context(), r.PathValue("health"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_deployments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByVersion handles GET /api/deployments/version/{version}
func (h *DeploymentHandler) ListByVersion(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.DeploymentSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.deploymentService.ListByVersion(r.Context(), r.PathValue("version"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_deployments_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
