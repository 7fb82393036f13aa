package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

type mockLikeService struct {
	liked bool
	count int64
	page  models.Page[models.Like]
	err   error
}

func (m *mockLikeService) Like(_ context.Context, ideaID, userID uuid.UUID) (*models.Like, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Like{ID: uuid.New(), IdeaID: ideaID, UserID: userID}, nil
}

func (m *mockLikeService) Unlike(_ context.Context, _, _ uuid.UUID) error {
	return m.err
}

func (m *mockLikeService) HasLiked(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return m.liked, m.err
}

func (m *mockLikeService) Count(_ context.Context, _ uuid.UUID) (int64, error) {
	return m.count, m.err
}

func (m *mockLikeService) ListByIdea(_ context.Context, _ uuid.UUID, _ pagination.Request) (models.Page[models.Like], error) {
	return m.page, m.err
}

func (m *mockLikeService) ListByUser(_ context.Context, _ uuid.UUID, _ pagination.Request) (models.Page[models.Like], error) {
	return m.page, m.err
}

var _ services.LikeService = (*mockLikeService)(nil)

func newLikeMux(svc services.LikeService) *http.ServeMux {
	mux := http.NewServeMux()
	NewLikeHandler(svc, testLimits, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func likePath(ideaID, userID uuid.UUID) string {
	return "/api/likes/ideas/" + ideaID.String() + "/users/" + userID.String()
}

func TestLikeHandler_Like(t *testing.T) {
	mux := newLikeMux(&mockLikeService{})

	ideaID, userID := uuid.New(), uuid.New()
	req := httptest.NewRequest(http.MethodPost, likePath(ideaID, userID), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ideaID.String())
}

func TestLikeHandler_LikeConflict(t *testing.T) {
	mux := newLikeMux(&mockLikeService{err: apperrors.Duplicatef("already liked")})

	req := httptest.NewRequest(http.MethodPost, likePath(uuid.New(), uuid.New()), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate", decodeError(t, rec)["error"])
}

func TestLikeHandler_LikeInvalidIdeaID(t *testing.T) {
	mux := newLikeMux(&mockLikeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/likes/ideas/banana/users/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_idea_id", decodeError(t, rec)["error"])
}

func TestLikeHandler_Unlike(t *testing.T) {
	mux := newLikeMux(&mockLikeService{})

	req := httptest.NewRequest(http.MethodDelete, likePath(uuid.New(), uuid.New()), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestLikeHandler_CheckReturnsBareBoolean(t *testing.T) {
	mux := newLikeMux(&mockLikeService{liked: true})

	req := httptest.NewRequest(http.MethodGet, likePath(uuid.New(), uuid.New())+"/check", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}

func TestLikeHandler_CountReturnsBareNumber(t *testing.T) {
	mux := newLikeMux(&mockLikeService{count: 42})

	req := httptest.NewRequest(http.MethodGet, "/api/likes/ideas/"+uuid.NewString()+"/count", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", strings.TrimSpace(rec.Body.String()))
}
