package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// EmployeeService provides operations for managing employees.
type EmployeeService interface {
	Create(ctx context.Context, emp *models.Employee) (*models.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, emp *models.Employee) (*models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.Employee], error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Employee], error)
	ListByDepartment(ctx context.Context, department string, page pagination.Request) (models.Page[models.Employee], error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, logger *zap.Logger) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *employeeService) validate(emp *models.Employee) error {
	if strings.TrimSpace(emp.Email) == "" {
		return apperrors.Validationf("email is required")
	}
	if emp.Status != "" && !validEnum(emp.Status, models.EmployeeStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.EmployeeStatuses))
	}
	return nil
}

// Create persists a new employee after checking email uniqueness.
func (s *employeeService) Create(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	if err := s.validate(emp); err != nil {
		return nil, err
	}

	exists, err := s.employeeRepo.ExistsByEmail(ctx, emp.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Duplicatef("employee with email %s already exists", emp.Email)
	}

	if emp.Status == "" {
		emp.Status = models.EmployeeStatusActive
	}
	emp.Skills = dedupeTags(emp.Skills)

	if err := s.employeeRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.logger.Info("created employee", zap.String("employee_id", emp.ID.String()), zap.String("email", emp.Email))
	return emp, nil
}

// Get retrieves an employee by ID.
func (s *employeeService) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.employeeRepo.Get(ctx, id)
}

// GetByEmail retrieves an employee by email.
func (s *employeeService) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return s.employeeRepo.GetByEmail(ctx, email)
}

// EmailExists reports whether an employee with the email exists.
func (s *employeeService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.employeeRepo.ExistsByEmail(ctx, email)
}

// Update replaces all mutable fields. The email uniqueness check only runs
// when the email actually changed.
func (s *employeeService) Update(ctx context.Context, id uuid.UUID, emp *models.Employee) (*models.Employee, error) {
	if err := s.validate(emp); err != nil {
		return nil, err
	}

	existing, err := s.employeeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if emp.Email != existing.Email {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, emp.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Duplicatef("employee with email %s already exists", emp.Email)
		}
	}

	existing.FirstName = emp.FirstName
	existing.LastName = emp.LastName
	existing.Email = emp.Email
	existing.Phone = emp.Phone
	existing.Department = emp.Department
	existing.Position = emp.Position
	if emp.Status != "" {
		existing.Status = emp.Status
	}
	existing.HireDate = emp.HireDate
	existing.Salary = emp.Salary
	existing.Address = emp.Address
	existing.Avatar = emp.Avatar
	existing.Manager = emp.Manager
	existing.Skills = dedupeTags(emp.Skills)

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an employee and, via CASCADE, everything it owns.
func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted employee", zap.String("employee_id", id.String()))
	return nil
}

// List returns a page of all employees.
func (s *employeeService) List(ctx context.Context, page pagination.Request) (models.Page[models.Employee], error) {
	list, total, err := s.employeeRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.Employee]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByStatus returns a page of employees with the given status.
func (s *employeeService) ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Employee], error) {
	if !validEnum(status, models.EmployeeStatuses) {
		return models.Page[models.Employee]{}, apperrors.Validationf("status must be one of: %s", enumList(models.EmployeeStatuses))
	}
	list, total, err := s.employeeRepo.ListByStatus(ctx, status, page)
	if err != nil {
		return models.Page[models.Employee]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByDepartment returns a page of employees in the given department.
func (s *employeeService) ListByDepartment(ctx context.Context, department string, page pagination.Request) (models.Page[models.Employee], error) {
	list, total, err := s.employeeRepo.ListByDepartment(ctx, department, page)
	if err != nil {
		return models.Page[models.Employee]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ EmployeeService = (*employeeService)(nil)
