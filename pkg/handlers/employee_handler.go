package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// EmployeeRequest is the JSON body for creating or replacing an employee.
type EmployeeRequest struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Status     string     `json:"status"`
	HireDate   *time.Time `json:"hire_date"`
	Salary     float64    `json:"salary"`
	Address    string     `json:"address"`
	Avatar     string     `json:"avatar"`
	Manager    string     `json:"manager"`
	Skills     []string   `json:"skills"`
}

func (req *EmployeeRequest) toModel() *models.Employee {
	return &models.Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		Status:     req.Status,
		HireDate:   req.HireDate,
		Salary:     req.Salary,
		Address:    req.Address,
		Avatar:     req.Avatar,
		Manager:    req.Manager,
		Skills:     req.Skills,
	}
}

// EmployeeHandler handles employee HTTP requests.
type EmployeeHandler struct {
	employeeService services.EmployeeService
	limits          pagination.Limits
	logger          *zap.Logger
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService services.EmployeeService, limits pagination.Limits, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		limits:          limits,
		logger:          logger,
	}
}

// RegisterRoutes registers the employee routes on the given mux.
func (h *EmployeeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/employees", h.Create)
	mux.HandleFunc("GET /api/employees", h.List)
	mux.HandleFunc("GET /api/employees/{id}", h.Get)
	mux.HandleFunc("PUT /api/employees/{id}", h.Update)
	mux.HandleFunc("DELETE /api/employees/{id}", h.Delete)
	mux.HandleFunc("GET /api/employees/email/{email}", h.GetByEmail)
	mux.HandleFunc("GET /api/employees/check/email/{email}", h.CheckEmail)
	mux.HandleFunc("GET /api/employees/status/{status}", h.ListByStatus)
	mux.HandleFunc("GET /api/employees/department/{department}", h.ListByDepartment)
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	emp, err := h.employeeService.Create(r.Context(), req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "create_employee_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, emp); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	emp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err, "get_employee_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, emp); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByEmail handles GET /api/employees/email/{email}
func (h *EmployeeHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		ServiceError(w, h.logger, err, "get_employee_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, emp); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CheckEmail handles GET /api/employees/check/email/{email} and returns a
// bare JSON boolean.
func (h *EmployeeHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.employeeService.EmailExists(r.Context(), r.PathValue("email"))
	if err != nil {
		ServiceError(w, h.logger, err, "check_employee_email_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, exists); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	emp, err := h.employeeService.Update(r.Context(), id, req.toModel())
	if err != nil {
		ServiceError(w, h.logger, err, "update_employee_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, emp); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		ServiceError(w, h.logger, err, "delete_employee_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EmployeeSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.employeeService.List(r.Context(), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_employees_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByStatus handles GET /api/employees/status/{status}
func (h *EmployeeHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EmployeeSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.employeeService.ListByStatus(r.Context(), r.PathValue("status"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_employees_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByDepartment handles GET /api/employees/department/{department}
func (h *EmployeeHandler) ListByDepartment(w http.ResponseWriter, r *http.Request) {
	page, ok := ParsePage(w, r, h.limits, pagination.EmployeeSortFields, "created_at", h.logger)
	if !ok {
		return
	}

	result, err := h.employeeService.ListByDepartment(r.Context(), r.PathValue("department"), page)
	if err != nil {
		ServiceError(w, h.logger, err, "list_employees_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
