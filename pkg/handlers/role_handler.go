package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// RoleRequest is the JSON body for creating or replacing a role.
type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *RoleRequest) toModel() *models.Role {
	return &models.Role{
		Name:        req.Name,
		Description: req.Description,
	}
}

// RoleHandler handles role HTTP requests.
type RoleHandler struct {
	roleService services.RoleService
	limits      pagination.Limits
	logger      *zap.Logger
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(roleService services.RoleService, limits pagination.Limits, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		limits:      limits,
		logger:      logger,
	}
}

// RegisterRoutes registers the role routes on the given mux.
func (h *RoleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/roles", h.Create)
	mux.HandleFunc("GET /api/roles", h.List)
	mux.HandleFunc("GET /api/roles/{id}", h.Get)
	mux.HandleFunc("PUT /api/roles/{id}", h.Update)
	mux.HandleFunc("DELETE /api/roles/{id}", h.Delete)
}

// Create handles POST /api/roles
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	role, err := h.roleService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_role_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, role); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/roles/{id}
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	role, err := h.roleService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_role_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, role); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/roles/{id}
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	role, err := h.roleService.Update(r.Context(), id, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_role_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, role); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/roles/{id}
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.roleService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_role_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/roles
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.RoleSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.roleService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_roles_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
