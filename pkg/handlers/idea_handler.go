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

// IdeaRequest is the create/update body for ideas. Counter fields sent by
// clients are ignored on create.
type IdeaRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to"`
	Comments    int        `json:"comments"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
	EmployeeID  *uuid.UUID `json:"employee_id"`
}

// IdeaHandler handles idea HTTP requests.
type IdeaHandler struct {
	ideaService services.IdeaService
	limits      pagination.Limits
	logger      *zap.Logger
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(ideaService services.IdeaService, limits pagination.Limits, logger *zap.Logger) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
		limits:      limits,
		logger:      logger,
	}
}

// RegisterRoutes registers the idea routes on the given mux.
func (h *IdeaHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ideas", h.Create)
	mux.HandleFunc("GET /api/ideas", h.List)
	mux.HandleFunc("GET /api/ideas/{id}", h.Get)
	mux.HandleFunc("PUT /api/ideas/{id}", h.Update)
	mux.HandleFunc("PATCH /api/ideas/{id}", h.Patch)
	mux.HandleFunc("DELETE /api/ideas/{id}", h.Delete)
	mux.HandleFunc("GET /api/ideas/assigned/{assignee}", h.ListByAssignee)
	mux.HandleFunc("GET /api/ideas/status/{status}", h.ListByStatus)
	mux.HandleFunc("GET /api/ideas/tag/{tag}", h.ListByTag)
}

func (r *IdeaRequest) toModel() *models.Idea {
	return &models.Idea{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		AssignedTo:  r.AssignedTo,
		Comments:    r.Comments,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
		EmployeeID:  r.EmployeeID,
	}
}

// Create handles POST /api/ideas
func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	idea, err := h.ideaService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_idea_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, idea); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/ideas/{id}
func (h *IdeaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := OptionalEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	idea, err := h.ideaService.Get(r.Context(), id, employeeID)
	if err != nil {
		ServiceError(w, h.logger, err, "get_idea_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, idea); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/ideas/{id}
func (h *IdeaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := OptionalEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var req IdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	idea, err := h.ideaService.Update(r.Context(), id, employeeID, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_idea_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, idea); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Patch handles PATCH /api/ideas/{id}
func (h *IdeaHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := OptionalEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	var upd models.IdeaUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	idea, err := h.ideaService.Patch(r.Context(), id, employeeID, &upd)
	if err != nil {
		ServiceError(w, h.logger, err, "patch_idea_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, idea); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/ideas/{id}
func (h *IdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	employeeID, ok := OptionalEmployeeID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.ideaService.Delete(r.Context(), id, employeeID); err != nil {
		ServiceError(w, h.logger, err, "delete_idea_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/ideas
func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := OptionalEmployeeID(w, r, h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.IdeaSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.ideaService.List(r.Context(), employeeID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_ideas_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByAssignee handles GET /api/ideas/assigned/{assignee}
func (h *IdeaHandler) ListByAssignee(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.IdeaSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.ideaService.ListByAssignee(r.Context(), r.PathValue("assignee"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_ideas_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByStatus handles GET /api/ideas/status/{status}
func (h *IdeaHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.IdeaSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.ideaService.ListByStatus(r.Context(), r.PathValue("status"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_ideas_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByTag handles GET /api/ideas/tag/{tag}
func (h *IdeaHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.IdeaSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.ideaService.ListByTag(r.Context(), r.PathValue("tag"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_ideas_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
