package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// maxEvidenceMemory caps the in-memory portion of a multipart upload;
// anything larger spills to temp files.
const maxEvidenceMemory = 32 << 20

// EvidenceStatusRequest is the PATCH body for evidence status changes.
type EvidenceStatusRequest struct {
	Status string `json:"status"`
}

// EvidenceHandler handles evidence HTTP requests, including multipart
// uploads.
type EvidenceHandler struct {
	evidenceService services.EvidenceService
	limits          pagination.Limits
	logger          *zap.Logger
}

// NewEvidenceHandler creates a new evidence handler.
func NewEvidenceHandler(evidenceService services.EvidenceService, limits pagination.Limits, logger *zap.Logger) *EvidenceHandler {
	return &EvidenceHandler{
		evidenceService: evidenceService,
		limits:          limits,
		logger:          logger,
	}
}

// RegisterRoutes registers the evidence routes on the given mux.
func (h *EvidenceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/evidence", h.Create)
	mux.HandleFunc("POST /api/evidence/upload", h.Upload)
	mux.HandleFunc("GET /api/evidence", h.List)
	mux.HandleFunc("GET /api/evidence/{id}", h.Get)
	mux.HandleFunc("PUT /api/evidence/{id}", h.Update)
	mux.HandleFunc("PATCH /api/evidence/{id}/status", h.UpdateStatus)
	mux.HandleFunc("DELETE /api/evidence/{id}", h.Delete)
	mux.HandleFunc("GET /api/evidence/project/{pid}", h.ListByProject)
	mux.HandleFunc("GET /api/evidence/project/{pid}/category/{category}", h.ListByProjectAndCategory)
	mux.HandleFunc("GET /api/evidence/project/{pid}/tag/{tag}", h.ListByProjectAndTag)
	mux.HandleFunc("GET /api/evidence/project/{pid}/status/{status}", h.ListByProjectAndStatus)
}

// parseEvidenceForm reads the multipart form into an EvidenceInput. The
// returned cleanup closes the file part and must be called when non-nil.
func (h *EvidenceHandler) parseEvidenceForm(w http.ResponseWriter, r *http.Request) (*services.EvidenceInput, func(), bool) {
	if err := r.ParseMultipartForm(maxEvidenceMemory); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Expected a multipart form"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, nil, false
	}

	in := &services.EvidenceInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Category:    r.FormValue("category"),
		URL:         r.FormValue("url"),
		Tags:        r.MultipartForm.Value["tags"],
	}

	for field, dst := range map[string]*uuid.UUID{
		"projectId":  &in.ProjectID,
		"uploadedBy": &in.UploadedBy,
	} {
		id, err := uuid.Parse(r.FormValue(field))
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", field+" must be a valid ID"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, nil, false
		}
		*dst = id
	}

	if raw := r.FormValue("ideaId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "ideaId must be a valid ID"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, nil, false
		}
		in.IdeaID = &id
	}

	cleanup := func() {}
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		in.File = &services.FileUpload{
			Reader:      file,
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
		cleanup = func() { file.Close() }
	case errors.Is(err, http.ErrMissingFile):
		// No file part; type-conditional validation decides if that is ok.
	default:
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Malformed file part"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, nil, false
	}

	return in, cleanup, true
}

// Create handles POST /api/evidence
func (h *EvidenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, cleanup, ok := h.parseEvidenceForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	ev, err := h.evidenceService.Create(r.Context(), in)
	if err != nil {
		ServiceError(w, h.logger, err, "create_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ev); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Upload handles POST /api/evidence/upload. The file part is mandatory and
// the evidence type is forced to FILE.
func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	in, cleanup, ok := h.parseEvidenceForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	if in.File == nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "A file part is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	in.Type = models.EvidenceTypeFile

	ev, err := h.evidenceService.Create(r.Context(), in)
	if err != nil {
		ServiceError(w, h.logger, err, "upload_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ev); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/evidence/{id}
func (h *EvidenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	ev, err := h.evidenceService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ev); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/evidence/{id}
func (h *EvidenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}
	in, cleanup, ok := h.parseEvidenceForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	ev, err := h.evidenceService.Update(r.Context(), id, in)
	if err != nil {
		ServiceError(w, h.logger, err, "update_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ev); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateStatus handles PATCH /api/evidence/{id}/status
func (h *EvidenceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req EvidenceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ev, err := h.evidenceService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		ServiceError(w, h.logger, err, "update_evidence_status_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ev); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/evidence/{id}
func (h *EvidenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.evidenceService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_evidence_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/evidence
func (h *EvidenceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EvidenceSortFields, "uploaded_at", h.logger)
	if !ok {
		return
	}

	result, err := h.evidenceService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByProject handles GET /api/evidence/project/{pid}
func (h *EvidenceHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUID(w, r, "pid", "invalid_project_id", "Invalid project ID format", h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.EvidenceSortFields, "uploaded_at", h.logger)
	if !ok {
		return
	}

	result, err := h.evidenceService.ListByProject(r.Context(), projectID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByProjectAndCategory handles GET /api/evidence/project/{pid}/category/{category}
func (h *EvidenceHandler) ListByProjectAndCategory(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUID(w, r, "pid", "invalid_project_id", "Invalid project ID format", h.logger)
	if !ok {
		return
	}

	list, err := h.evidenceService.ListByProjectAndCategory(r.Context(), projectID, r.PathValue("category"))
	if err != nil {
		ServiceError(w, h.logger, err, "list_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, list); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByProjectAndTag handles GET /api/evidence/project/{pid}/tag/{tag}
func (h *EvidenceHandler) ListByProjectAndTag(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUID(w, r, "pid", "invalid_project_id", "Invalid project ID format", h.logger)
	if !ok {
		return
	}

	list, err := h.evidenceService.ListByProjectAndTag(r.Context(), projectID, r.PathValue("tag"))
	if err != nil {
		ServiceError(w, h.logger, err, "list_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, list); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByProjectAndStatus handles GET /api/evidence/project/{pid}/status/{status}
func (h *EvidenceHandler) ListByProjectAndStatus(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUID(w, r, "pid", "invalid_project_id", "Invalid project ID format", h.logger)
	if !ok {
		return
	}

	list, err := h.evidenceService.ListByProjectAndStatus(r.Context(), projectID, r.PathValue("status"))
	if err != nil {
		ServiceError(w, h.logger, err, "list_evidence_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, list); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
