package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// EndpointRequest is the JSON body for creating or replacing an API
// endpoint entry.
type EndpointRequest struct {
	Name           string     `json:"name"`
	Method         string     `json:"method"`
	Path           string     `json:"path"`
	Status         string     `json:"status"`
	Version        string     `json:"version"`
	LastTested     *time.Time `json:"last_tested"`
	ResponseTimeMs int        `json:"response_time_ms"`
	EmployeeID     *uuid.UUID `json:"employee_id"`
}

func (req *EndpointRequest) toModel() *models.ApiEndpoint {
	return &models.ApiEndpoint{
		Name:           req.Name,
		Method:         req.Method,
		Path:           req.Path,
		Status:         req.Status,
		Version:        req.Version,
		LastTested:     req.LastTested,
		ResponseTimeMs: req.ResponseTimeMs,
		EmployeeID:     req.EmployeeID,
	}
}

// EndpointHandler handles API endpoint catalog HTTP requests.
type EndpointHandler struct {
	endpointService services.EndpointService
	limits          pagination.Limits
	logger          *zap.Logger
}

// NewEndpointHandler creates a new API endpoint handler.
func NewEndpointHandler(endpointService services.EndpointService, limits pagination.Limits, logger *zap.Logger) *EndpointHandler {
	return &EndpointHandler{
		endpointService: endpointService,
		limits:          limits,
		logger:          logger,
	}
}

// RegisterRoutes registers the API endpoint routes on the given mux.
func (h *EndpointHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/endpoints", h.Create)
	mux.HandleFunc("GET /api/endpoints", h.List)
	mux.HandleFunc("GET /api/endpoints/{id}", h.Get)
	mux.HandleFunc("PUT /api/endpoints/{id}", h.Update)
	mux.HandleFunc("DELETE /api/endpoints/{id}", h.Delete)
	mux.HandleFunc("GET /api/endpoints/status/{status}", h.ListByStatus)
	mux.HandleFunc("GET /api/endpoints/method/{method}", h.ListByMethod)
	mux.HandleFunc("GET /api/endpoints/version/{version}", h.ListByVersion)
}

// Create handles POST /api/endpoints
func (h *EndpointHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req EndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	e, err := h.endpointService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_endpoint_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, e); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/endpoints/{id}
func (h *EndpointHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	e, err := h.endpointService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_endpoint_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, e); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/endpoints/{id}
func (h *EndpointHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req EndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	e, err := h.endpointService.Update(r.Context(), id, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_endpoint_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, e); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/endpoints/{id}
func (h *EndpointHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.endpointService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_endpoint_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/endpoints
func (h *EndpointHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EndpointSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.endpointService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_endpoints_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByStatus handles GET /api/endpoints/status/{status}
func (h *EndpointHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EndpointSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.endpointService.ListByStatus(r.Context(), r.PathValue("status"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_endpoints_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByMethod handles GET /api/endpoints/method/{method}
func (h *EndpointHandler) ListByMethod(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EndpointSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.endpointService.ListByMethod(r.Context(), r.PathValue("method"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_endpoints_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByVersion handles GET /api/endpoints/version/{version}
func (h *EndpointHandler) ListByVersion(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EndpointSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.endpointService.ListByVersion(r.Context(), r.PathValue("version"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_endpoints_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
