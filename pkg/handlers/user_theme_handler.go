package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// UserThemeRequest is the JSON body for creating a user theme preference.
type UserThemeRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Theme  string    `json:"theme"`
}

// UserThemeUpdateRequest is the PUT body for theme changes.
type UserThemeUpdateRequest struct {
	Theme string `json:"theme"`
}

// UserThemeHandler handles user theme HTTP requests.
type UserThemeHandler struct {
	themeService services.UserThemeService
	logger       *zap.Logger
}

// NewUserThemeHandler creates a new user theme handler.
func NewUserThemeHandler(themeService services.UserThemeService, logger *zap.Logger) *UserThemeHandler {
	return &UserThemeHandler{
		themeService: themeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the user theme routes on the given mux.
func (h *UserThemeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/user-themes", h.Create)
	mux.HandleFunc("GET /api/user-themes/user/{userId}", h.GetByUser)
	mux.HandleFunc("PUT /api/user-themes/user/{userId}", h.UpdateByUser)
	mux.HandleFunc("DELETE /api/user-themes/user/{userId}", h.DeleteByUser)
}

// Create handles POST /api/user-themes
func (h *UserThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	theme, err := h.themeService.Create(r.Context(), &models.UserTheme{UserID: req.UserID, Theme: req.Theme})
	if err != nil {
		ServiceError(w, h.logger, err, "create_user_theme_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, theme); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByUser handles GET /api/user-themes/user/{userId}
func (h *UserThemeHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	theme, err := h.themeService.GetByUser(r.Context(), userID)
	if err != nil {
		ServiceError(w, h.logger, err, "get_user_theme_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, theme); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateByUser handles PUT /api/user-themes/user/{userId}
func (h *UserThemeHandler) UpdateByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	var req UserThemeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	theme, err := h.themeService.UpdateByUser(r.Context(), userID, req.Theme)
	if err != nil {
		ServiceError(w, h.logger, err, "update_user_theme_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, theme); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteByUser handles DELETE /api/user-themes/user/{userId}
func (h *UserThemeHandler) DeleteByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	if err := h.themeService.DeleteByUser(r.Context(), userID); err != nil {
		ServiceError(w, h.logger, err, "delete_user_theme_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
