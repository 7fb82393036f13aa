package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// TestLogRequest is the JSON body for recording a test execution.
type TestLogRequest struct {
	EndpointID    uuid.UUID `json:"endpoint_id"`
	RequestMethod string    `json:"request_method"`
	RequestPath   string    `json:"request_path"`
	RequestBody   string    `json:"request_body"`
	ResponseBody  string    `json:"response_body"`
}

func (req *TestLogRequest) toModel() *models.ApiTestLog {
	return &models.ApiTestLog{
		EndpointID:    req.EndpointID,
		RequestMethod: req.RequestMethod,
		RequestPath:   req.RequestPath,
		RequestBody:   req.RequestBody,
		ResponseBody:  req.ResponseBody,
	}
}

// TestLogHandler handles API test log HTTP requests. Logs are append-only,
// so there are no update or delete routes.
type TestLogHandler struct {
	testLogService services.TestLogService
	limits         pagination.Limits
	logger         *zap.Logger
}

// NewTestLogHandler creates a new API test log handler.
func NewTestLogHandler(testLogService services.TestLogService, limits pagination.Limits, logger *zap.Logger) *TestLogHandler {
	return &TestLogHandler{
		testLogService: testLogService,
		limits:         limits,
		logger:         logger,
	}
}

// RegisterRoutes registers the test log routes on the given mux.
func (h *TestLogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/test-logs", h.Create)
	mux.HandleFunc("GET /api/test-logs", h.List)
	mux.HandleFunc("GET /api/test-logs/{id}", h.Get)
	mux.HandleFunc("GET /api/test-logs/endpoint/{endpointId}", h.ListByEndpoint)
}

// Create handles POST /api/test-logs
func (h *TestLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TestLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	log, err := h.testLogService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_test_log_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, log); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/test-logs/{id}
func (h *TestLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	log, err := h.testLogService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_test_log_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, log); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/test-logs
func (h *TestLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.TestLogSortFields, "executed_at", h.logger)
	if !ok {
		return
	}

	result, err := h.testLogService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_test_logs_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByEndpoint handles GET /api/test-logs/endpoint/{endpointId}
func (h *TestLogHandler) ListByEndpoint(w http.ResponseWriter, r *http.Request) {
	endpointID, ok := parseUUID(w, r, "endpointId", "invalid_endpoint_id", "Invalid endpoint ID format", h.logger)
	if !ok {
		return
	}
	page, ok := ParsePage(w, r, h.limits, pagination.TestLogSortFields, "executed_at", h.logger)
	if !ok {
		return
	}

	result, err := h.testLogService.ListByEndpoint(r.Context(), endpointID, page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_test_logs_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
