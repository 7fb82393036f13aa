package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// UserHandler handles user HTTP requests.
type UserHandler struct {
	userService services.UserService
	limits      pagination.Limits
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService services.UserService, limits pagination.Limits, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		limits:      limits,
		logger:      logger,
	}
}

// RegisterRoutes registers the user routes on the given mux.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.Create)
	mux.HandleFunc("GET /api/users", h.List)
	mux.HandleFunc("GET /api/users/{id}", h.Get)
	mux.HandleFunc("PUT /api/users/{id}", h.Update)
	mux.HandleFunc("DELETE /api/users/{id}", h.Delete)
	mux.HandleFunc("GET /api/users/username/{username}", h.GetByUsername)
	mux.HandleFunc("GET /api/users/email/{email}", h.GetByEmail)
	mux.HandleFunc("GET /api/users/check/username/{username}", h.CheckUsername)
	mux.HandleFunc("GET /api/users/check/email/{email}", h.CheckEmail)
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	user, err := h.userService.Create(r.Context(), &in)
	if err != nil {
		ServiceError(w, h.logger, err, "create_user_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_user_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByUsername handles GET /api/users/username/{username}
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		ServiceError(w, h.logger, err, "get_user_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByEmail handles GET /api/users/email/{email}
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		ServiceError(w, h.logger, err, "get_user_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CheckUsername handles GET /api/users/check/username/{username} and returns
// a bare JSON boolean.
func (h *UserHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.UsernameExists(r.Context(), r.PathValue("username"))
	if err != nil {
		ServiceError(w, h.logger, err, "check_username_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, exists); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CheckEmail handles GET /api/users/check/email/{email} and returns a bare
// JSON boolean.
func (h *UserHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.EmailExists(r.Context(), r.PathValue("email"))
	if err != nil {
		ServiceError(w, h.logger, err, "check_email_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, exists); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var in services.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	user, err := h.userService.Update(r.Context(), id, &in)
	if err != nil {
		ServiceError(w, h.logger, err, "update_user_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_user_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.UserSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.userService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_users_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
