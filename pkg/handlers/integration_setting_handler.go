package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// IntegrationSettingRequest is the JSON body for creating or replacing an
// integration setting.
type IntegrationSettingRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Connected bool      `json:"connected"`
	Config    string    `json:"config"`
}

func (req *IntegrationSettingRequest) toModel() *models.IntegrationSetting {
	return &models.IntegrationSetting{
		UserID:    req.UserID,
		Type:      req.Type,
		Connected: req.Connected,
		Config:    req.Config,
	}
}

// IntegrationConnectionRequest is the PATCH body for toggling a connection.
type IntegrationConnectionRequest struct {
	Connected bool `json:"connected"`
}

// IntegrationSettingHandler handles integration setting HTTP requests.
type IntegrationSettingHandler struct {
	settingService services.IntegrationSettingService
	logger         *zap.Logger
}

// NewIntegrationSettingHandler creates a new integration setting handler.
func NewIntegrationSettingHandler(settingService services.IntegrationSettingService, logger *zap.Logger) *IntegrationSettingHandler {
	return &IntegrationSettingHandler{
		settingService: settingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the integration setting routes on the given mux.
func (h *IntegrationSettingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/integration-settings", h.Create)
	mux.HandleFunc("GET /api/integration-settings/{id}", h.Get)
	mux.HandleFunc("GET /api/integration-settings/user/{userId}", h.ListByUser)
	mux.HandleFunc("GET /api/integration-settings/user/{userId}/type/{type}", h.GetByUserAndType)
	mux.HandleFunc("PUT /api/integration-settings/{id}", h.Update)
	mux.HandleFunc("PATCH /api/integration-settings/{id}/connection", h.UpdateConnection)
	mux.HandleFunc("DELETE /api/integration-settings/{id}", h.Delete)
}

// Create handles POST /api/integration-settings
func (h *IntegrationSettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IntegrationSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	setting, err := h.settingService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_integration_setting_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, setting); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/integration-settings/{id}
func (h *IntegrationSettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	setting, err := h.settingService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_integration_setting_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, setting); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByUser handles GET /api/integration-settings/user/{userId}
func (h *IntegrationSettingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	settings, err := h.settingService.ListByUser(r.Context(), userID)
	if err != nil {
		ServiceError(w, h.logger, err, "list_integration_settings_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, settings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByUserAndType handles GET /api/integration-settings/user/{userId}/type/{type}
func (h *IntegrationSettingHandler) GetByUserAndType(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	setting, err := h.settingService.GetByUserAndType(r.Context(), userID, r.PathValue("type"))
	if err != nil {
		ServiceError(w, h.logger, err, "get_integration_setting_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, setting); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/integration-settings/{id}
func (h *IntegrationSettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req IntegrationSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	setting, err := h.settingService.Update(r.Context(), id, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_integration_setting_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, setting); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateConnection handles PATCH /api/integration-settings/{id}/connection
func (h *IntegrationSettingHandler) UpdateConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req IntegrationConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	setting, err := h.settingService.UpdateConnection(r.Context(), id, req.Connected)
	if err != nil {
		ServiceError(w, h.logger, err, "update_integration_connection_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, setting); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/integration-settings/{id}
func (h *IntegrationSettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.settingService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_integration_setting_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
