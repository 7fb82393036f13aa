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

// EnvironmentService provides operations for managing environments. The
// owning employee is recorded on create but lookups are unscoped.
type EnvironmentService interface {
	Create(ctx context.Context, employeeID uuid.UUID, env *models.Environment) (*models.Environment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Environment, error)
	GetByName(ctx context.Context, name string) (*models.Environment, error)
	Update(ctx context.Context, id uuid.UUID, env *models.Environment) (*models.Environment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.Environment], error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Environment], error)
}

type environmentService struct {
	environmentRepo repositories.EnvironmentRepository
	employeeRepo    repositories.EmployeeRepository
	logger          *zap.Logger
}

// NewEnvironmentService creates a new environment service.
func NewEnvironmentService(environmentRepo repositories.EnvironmentRepository, employeeRepo repositories.EmployeeRepository, logger *zap.Logger) EnvironmentService {
	return &environmentService{
		environmentRepo: environmentRepo,
		employeeRepo:    employeeRepo,
		logger:          logger,
	}
}

func (s *environmentService) validate(env *models.Environment) error {
	if strings.TrimSpace(env.Name) == "" {
		return apperrors.Validationf("name is required")
	}
	if env.Status != "" && !validEnum(env.Status, models.EnvironmentStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.EnvironmentStatuses))
	}
	return nil
}

// Create persists a new environment after checking name uniqueness and
// resolving the owning employee.
func (s *environmentService) Create(ctx context.Context, employeeID uuid.UUID, env *models.Environment) (*models.Environment, error) {
	if err := s.validate(env); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.Get(ctx, employeeID); err != nil {
		return nil, err
	}

	exists, err := s.environmentRepo.ExistsByName(ctx, env.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Duplicatef("environment with name %s already exists", env.Name)
	}

	env.EmployeeID = employeeID
	if env.Status == "" {
		env.Status = models.EnvironmentStatusActive
	}
	if env.DeploymentsCount == "" {
		env.DeploymentsCount = "0"
	}

	if err := s.environmentRepo.Create(ctx, env); err != nil {
		return nil, err
	}

	s.logger.Info("created environment", zap.String("environment_id", env.ID.String()), zap.String("name", env.Name))
	return env, nil
}

// Get retrieves an environment by ID.
func (s *environmentService) Get(ctx context.Context, id uuid.UUID) (*models.Environment, error) {
	return s.environmentRepo.Get(ctx, id)
}

// GetByName retrieves an environment by its unique name.
func (s *environmentService) GetByName(ctx context.Context, name string) (*models.Environment, error) {
	return s.environmentRepo.GetByName(ctx, name)
}

// Update replaces all mutable fields. Name uniqueness is only checked when
// the name changed.
func (s *environmentService) Update(ctx context.Context, id uuid.UUID, env *models.Environment) (*models.Environment, error) {
	if err := s.validate(env); err != nil {
		return nil, err
	}

	existing, err := s.environmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if env.Name != existing.Name {
		exists, err := s.environmentRepo.ExistsByName(ctx, env.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Duplicatef("environment with name %s already exists", env.Name)
		}
	}

	existing.Name = env.Name
	if env.Status != "" {
		existing.Status = env.Status
	}
	if env.DeploymentsCount != "" {
		existing.DeploymentsCount = env.DeploymentsCount
	}
	existing.LastUpdate = env.LastUpdate

	if err := s.environmentRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an environment.
func (s *environmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.environmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted environment", zap.String("environment_id", id.String()))
	return nil
}

// List returns a page of all environments.
func (s *environmentService) List(ctx context.Context, page pagination.Request) (models.Page[models.Environment], error) {
	list, total, err := s.environmentRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.Environment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByStatus returns a page of environments with the given status.
func (s *environmentService) ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Environment], error) {
	if !validEnum(status, models.EnvironmentStatuses) {
		return models.Page[models.Environment]{}, apperrors.Validationf("status must be one of: %s", enumList(models.EnvironmentStatuses))
	}
	list, total, err := s.environmentRepo.ListByStatus(ctx, status, page)
	if err != nil {
		return models.Page[models.Environment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ EnvironmentService = (*environmentService)(nil)
