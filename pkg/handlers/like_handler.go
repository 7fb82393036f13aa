package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// LikeHandler handles like HTTP requests. Likes are addressed by the
// (idea, user) pair rather than their own id.
type LikeHandler struct {
	likeService services.LikeService
	limits      pagination.Limits
	logger      *zap.Logger
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(likeService services.LikeService, limits pagination.Limits, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		limits:      limits,
		logger:      logger,
	}
}

// RegisterRoutes registers the like routes on the given mux.
func (h *LikeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/likes/ideas/{ideaId}/users/{userId}", h.Like)
	mux.HandleFunc("DELETE /api/likes/ideas/{ideaId}/users/{userId}", h.Unlike)
	mux.HandleFunc("GET /api/likes/ideas/{ideaId}/users/{userId}/check", h.Check)
	mux.HandleFunc("GET /api/likes/ideas/{ideaId}/count", h.Count)
	mux.HandleFunc("GET /api/likes/ideas/{ideaId}", h.ListByIdea)
	mux.HandleFunc("GET /api/likes/users/{userId}", h.ListByUser)
}

// Like handles POST /api/likes/ideas/{ideaId}/users/{userId}
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := parseUUID(w, r, "ideaId", "invalid_idea_id", "Invalid idea ID format", h.logger)
	if !ok {
		return
	}
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	like, err := h.likeService.Like(r.Context(), ideaID, userID)
	if err != nil {
		ServiceError(w, h.logger, err, "like_idea_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, like); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Unlike handles DELETE /api/likes/ideas/{ideaId}/users/{userId}
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := parseUUID(w, r, "ideaId", "invalid_idea_id", "Invalid idea ID format", h.logger)
	if !ok {
		return
	}
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	if err := h.likeService.Unlike(r.Context(), ideaID, userID); err != nil {
		ServiceError(w, h.logger, err, "unlike_idea_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Check handles GET /api/likes/ideas/{ideaId}/users/{userId}/check and
// returns a bare JSON boolean.
func (h *LikeHandler) Check(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := parseUUID(w, r, "ideaId", "invalid_idea_id", "Invalid idea ID format", h.logger)
	if !ok {
		return
	}
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}

	liked, err := h.likeService.HasLiked(r.Context(), ideaID, userID)
	if err != nil {
		ServiceError(w, h.logger, err, "check_like_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, liked); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Count handles GET /api/likes/ideas/{ideaId}/count and returns a bare JSON
// number.
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := parseUUID(w, r, "ideaId", "invalid_idea_id", "Invalid idea ID format", h.logger)
	if !ok {
		return
	}

	count, err := h.likeService.Count(r.Context(), ideaID)
	if err != nil {
		ServiceError(w, h.logger, err, "count_likes_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, count); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByIdea handles GET /api/likes/ideas/{ideaId}
func (h *LikeHandler) ListByIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := parseUUID(w, r, "ideaId", "invalid_idea_id", "Invalid idea ID format", h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.LikeSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.likeService.ListByIdea(r.Context(), ideaID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_likes_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByUser handles GET /api/likes/users/{userId}
func (h *LikeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, "userId", "invalid_user_id", "Invalid user ID format", h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.LikeSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.likeService.ListByUser(r.Context(), userID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_likes_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
