package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// SubscriptionRequest is the JSON body for creating or replacing a
// subscription.
type SubscriptionRequest struct {
	UserID    uuid.UUID  `json:"user_id"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (req *SubscriptionRequest) toModel() *models.Subscription {
	return &models.Subscription{
		UserID:    req.UserID,
		Plan:      req.Plan,
		Status:    req.Status,
		StartedAt: req.StartedAt,
		ExpiresAt: req.ExpiresAt,
	}
}

// SubscriptionStatusRequest is the PATCH body for subscription status
// changes.
type SubscriptionStatusRequest struct {
	Status string `json:"status"`
}

// SubscriptionPlanRequest is the PATCH body for subscription plan changes.
type SubscriptionPlanRequest struct {
	Plan string `json:"plan"`
}

// SubscriptionHandler handles subscription HTTP requests.
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
	logger              *zap.Logger
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(subscriptionService services.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// RegisterRoutes registers the subscription routes on the given mux.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/subscriptions", h.Create)
	mux.HandleFunc("GET /api/subscriptions/{id}", h.Get)
	mux.HandleFunc("GET /api/subscriptions/user/{userId}", h.GetByUser)
	mux.HandleFunc("PUT /api/subscriptions/{id}", h.Update)
	mux.HandleFunc("PATCH /api/subscriptions/{id}/status", h.UpdateStatus)
	mux.HandleFunc("PATCH /api/subscriptions/{id}/plan", h.UpdatePlan)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", h.Delete)
}

// Create handles POST /api/subscriptions
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sub, err := h.subscriptionService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_subscription_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sub); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/subscriptions/{id}
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_subscription_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sub); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByUser handles GET /api/subscriptions/user/{userId}
func (h *SubscriptionHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetByUser(r.Context(), userID)
	if err != nil {
		ServiceError(w, h.logger, err, "get_subscription_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sub); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/subscriptions/{id}
func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sub, err := h.subscriptionService.Update(r.Context(), id, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_subscription_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sub); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateStatus handles PATCH /api/subscriptions/{id}/status
func (h *SubscriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req SubscriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sub, err := h.subscriptionService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		ServiceError(w, h.logger, err, "update_subscription_status_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sub); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdatePlan handles PATCH /api/subscriptions/{id}/plan
func (h *SubscriptionHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req SubscriptionPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sub, err := h.subscriptionService.UpdatePlan(r.Context(), id, req.Plan)
	if err != nil {
		ServiceError(w, h.logger, err, "update_subscription_plan_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sub); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/subscriptions/{id}
func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.subscriptionService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_subscription_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
