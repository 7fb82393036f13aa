package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// TagRequest is the JSON body for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name"`
}

// TagHandler handles tag catalog HTTP requests. The catalog is small, so
// listing is unpaged.
type TagHandler struct {
	tagService services.TagService
	logger     *zap.Logger
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService services.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// RegisterRoutes registers the tag routes on the given mux.
func (h *TagHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tags", h.Create)
	mux.HandleFunc("GET /api/tags", h.List)
	mux.HandleFunc("GET /api/tags/{id}", h.Get)
	mux.HandleFunc("PUT /api/tags/{id}", h.Update)
	mux.HandleFunc("DELETE /api/tags/{id}", h.Delete)
}

// Create handles POST /api/tags
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	tag, err := h.tagService.Create(r.Context(), &models.Tag{Name: req.Name})
	if err != nil {
		ServiceError(w, h.logger, err, "create_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, tag); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/tags/{id}
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	tag, err := h.tagService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, tag); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/tags/{id}
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	tag, err := h.tagService.Update(r.Context(), id, &models.Tag{Name: req.Name})
	if err != nil {
		ServiceError(w, h.logger, err, "update_tag_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, tag); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/tags/{id}
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.tagService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_tag_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.List(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err, "list_tags_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, tags); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
