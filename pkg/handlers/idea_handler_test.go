package handlers

import (
	"context"
	"encoding/json"
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

// mockIdeaService returns canned results; err wins when set.
type mockIdeaService struct {
	idea *models.Idea
	page models.Page[models.Idea]
	err  error

	deleted []uuid.UUID
}

func (m *mockIdeaService) Create(_ context.Context, idea *models.Idea) (*models.Idea, error) {
	if m.err != nil {
		return nil, m.err
	}
	idea.ID = uuid.New()
	idea.Status = models.IdeaStatusPending
	return idea, nil
}

func (m *mockIdeaService) Get(_ context.Context, id uuid.UUID, _ *uuid.UUID) (*models.Idea, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.idea, nil
}

func (m *mockIdeaService) Update(_ context.Context, _ uuid.UUID, _ *uuid.UUID, idea *models.Idea) (*models.Idea, error) {
	if m.err != nil {
		return nil, m.err
	}
	return idea, nil
}

func (m *mockIdeaService) Patch(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ *models.IdeaUpdate) (*models.Idea, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.idea, nil
}

func (m *mockIdeaService) Delete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockIdeaService) List(_ context.Context, _ *uuid.UUID, _ pagination.Request) (models.Page[models.Idea], error) {
	return m.page, m.err
}

func (m *mockIdeaService) ListByAssignee(_ context.Context, _ string, _ pagination.Request) (models.Page[models.Idea], error) {
	return m.page, m.err
}

func (m *mockIdeaService) ListByStatus(_ context.Context, _ string, _ pagination.Request) (models.Page[models.Idea], error) {
	return m.page, m.err
}

func (m *mockIdeaService) ListByTag(_ context.Context, _ string, _ pagination.Request) (models.Page[models.Idea], error) {
	return m.page, m.err
}

var _ services.IdeaService = (*mockIdeaService)(nil)

var testLimits = pagination.Limits{DefaultSize: 20, MaxSize: 100}

func newIdeaMux(svc services.IdeaService) *http.ServeMux {
	mux := http.NewServeMux()
	NewIdeaHandler(svc, testLimits, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestIdeaHandler_Create(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{})

	req := httptest.NewRequest(http.MethodPost, "/api/ideas", strings.NewReader(`{"title":"Dark mode"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var idea models.Idea
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&idea))
	assert.Equal(t, "Dark mode", idea.Title)
	assert.Equal(t, models.IdeaStatusPending, idea.Status)
	assert.NotEqual(t, uuid.Nil, idea.ID)
}

func TestIdeaHandler_CreateInvalidBody(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{})

	req := httptest.NewRequest(http.MethodPost, "/api/ideas", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec)["error"])
}

func TestIdeaHandler_CreateValidationError(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{err: apperrors.Validationf("title is required")})

	req := httptest.NewRequest(http.MethodPost, "/api/ideas", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body["error"])
	assert.Contains(t, body["message"], "title is required")
}

func TestIdeaHandler_GetInvalidID(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{})

	req := httptest.NewRequest(http.MethodGet, "/api/ideas/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_id", decodeError(t, rec)["error"])
}

func TestIdeaHandler_GetNotFound(t *testing.T) {
	id := uuid.New()
	mux := newIdeaMux(&mockIdeaService{err: apperrors.NotFoundf("idea %s not found", id)})

	req := httptest.NewRequest(http.MethodGet, "/api/ideas/"+id.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec)["error"])
}

func TestIdeaHandler_GetInvalidEmployeeID(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{idea: &models.Idea{Title: "Dark mode"}})

	req := httptest.NewRequest(http.MethodGet, "/api/ideas/"+uuid.NewString()+"?employeeId=banana", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_employee_id", decodeError(t, rec)["error"])
}

func TestIdeaHandler_Delete(t *testing.T) {
	svc := &mockIdeaService{}
	mux := newIdeaMux(svc)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/ideas/"+id.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	require.Len(t, svc.deleted, 1)
	assert.Equal(t, id, svc.deleted[0])
}

func TestIdeaHandler_ListPageShape(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{
		page: models.NewPage([]models.Idea{{Title: "Dark mode"}}, 1, 0, 20),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ideas?page=0&size=20", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	for _, key := range []string{"content", "totalElements", "totalPages", "number", "size"} {
		assert.Contains(t, body, key)
	}
}

func TestIdeaHandler_ListBadSort(t *testing.T) {
	mux := newIdeaMux(&mockIdeaService{})

	req := httptest.NewRequest(http.MethodGet, "/api/ideas?sort=passwords", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec)["error"])
}
