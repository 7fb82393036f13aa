package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// mockEvidenceService records the last input and returns it echoed back as a
// stored row.
type mockEvidenceService struct {
	lastInput *services.EvidenceInput
	page      models.Page[models.Evidence]
	err       error
}

func (m *mockEvidenceService) Create(_ context.Context, in *services.EvidenceInput) (*models.Evidence, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastInput = in
	return &models.Evidence{
		ID:        uuid.New(),
		Title:     in.Title,
		Type:      in.Type,
		Category:  in.Category,
		Status:    models.EvidenceStatusPending,
		ProjectID: in.ProjectID,
	}, nil
}

func (m *mockEvidenceService) Get(_ context.Context, _ uuid.UUID) (*models.Evidence, error) {
	return nil, m.err
}

func (m *mockEvidenceService) Update(_ context.Context, _ uuid.UUID, in *services.EvidenceInput) (*models.Evidence, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastInput = in
	return &models.Evidence{Title: in.Title}, nil
}

func (m *mockEvidenceService) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.Evidence, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Evidence{ID: id, Status: status}, nil
}

func (m *mockEvidenceService) Delete(_ context.Context, _ uuid.UUID) error {
	return m.err
}

func (m *mockEvidenceService) List(_ context.Context, _ pagination.Request) (models.Page[models.Evidence], error) {
	return m.page, m.err
}

func (m *mockEvidenceService) ListByProject(_ context.Context, _ uuid.UUID, _ pagination.Request) (models.Page[models.Evidence], error) {
	return m.page, m.err
}

func (m *mockEvidenceService) ListByProjectAndCategory(_ context.Context, _ uuid.UUID, _ string) ([]models.Evidence, error) {
	return nil, m.err
}

func (m *mockEvidenceService) ListByProjectAndTag(_ context.Context, _ uuid.UUID, _ string) ([]models.Evidence, error) {
	return nil, m.err
}

func (m *mockEvidenceService) ListByProjectAndStatus(_ context.Context, _ uuid.UUID, _ string) ([]models.Evidence, error) {
	return nil, m.err
}

var _ services.EvidenceService = (*mockEvidenceService)(nil)

func newEvidenceMux(svc services.EvidenceService) *http.ServeMux {
	mux := http.NewServeMux()
	NewEvidenceHandler(svc, testLimits, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

type evidenceForm struct {
	fields map[string]string
	file   string
	data   string
}

func (f evidenceForm) encode(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range f.fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if f.file != "" {
		part, err := mw.CreateFormFile("file", f.file)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestEvidenceHandler_CreateWithFile(t *testing.T) {
	svc := &mockEvidenceService{}
	mux := newEvidenceMux(svc)

	body, contentType := evidenceForm{
		fields: map[string]string{
			"title":      "Benchmark results",
			"type":       models.EvidenceTypeFile,
			"category":   "performance",
			"projectId":  uuid.NewString(),
			"uploadedBy": uuid.NewString(),
		},
		file: "results.txt",
		data: "p99 120ms",
	}.encode(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evidence", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastInput)
	require.NotNil(t, svc.lastInput.File)
	assert.Equal(t, "results.txt", svc.lastInput.File.Name)

	var ev models.Evidence
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ev))
	assert.Equal(t, "Benchmark results", ev.Title)
	assert.Equal(t, models.EvidenceStatusPending, ev.Status)
}

func TestEvidenceHandler_CreateInvalidProjectID(t *testing.T) {
	mux := newEvidenceMux(&mockEvidenceService{})

	body, contentType := evidenceForm{
		fields: map[string]string{
			"title":      "Benchmark results",
			"category":   "performance",
			"projectId":  "banana",
			"uploadedBy": uuid.NewString(),
		},
	}.encode(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evidence", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body2 := decodeError(t, rec)
	assert.Equal(t, "invalid_request", body2["error"])
	assert.Equal(t, "projectId must be a valid ID", body2["message"])
}

func TestEvidenceHandler_CreateNotMultipart(t *testing.T) {
	mux := newEvidenceMux(&mockEvidenceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/evidence", bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec)["error"])
}

func TestEvidenceHandler_UploadRequiresFile(t *testing.T) {
	mux := newEvidenceMux(&mockEvidenceService{})

	body, contentType := evidenceForm{
		fields: map[string]string{
			"title":      "Benchmark results",
			"category":   "performance",
			"projectId":  uuid.NewString(),
			"uploadedBy": uuid.NewString(),
		},
	}.encode(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evidence/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp["error"])
	assert.Equal(t, "A file part is required", resp["message"])
}

func TestEvidenceHandler_UploadForcesFileType(t *testing.T) {
	svc := &mockEvidenceService{}
	mux := newEvidenceMux(svc)

	body, contentType := evidenceForm{
		fields: map[string]string{
			"title":      "Benchmark results",
			"type":       models.EvidenceTypeText,
			"category":   "performance",
			"projectId":  uuid.NewString(),
			"uploadedBy": uuid.NewString(),
		},
		file: "results.txt",
		data: "p99 120ms",
	}.encode(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evidence/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastInput)
	assert.Equal(t, models.EvidenceTypeFile, svc.lastInput.Type)
}

func TestEvidenceHandler_UpdateStatus(t *testing.T) {
	mux := newEvidenceMux(&mockEvidenceService{})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/evidence/"+id.String()+"/status",
		bytes.NewBufferString(`{"status":"VALIDATED"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ev models.Evidence
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ev))
	assert.Equal(t, models.EvidenceStatusValidated, ev.Status)
}
