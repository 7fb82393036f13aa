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

// DeploymentService provides operations for managing deployments. All
// id-keyed operations are owner-scoped; the filter lists are not.
type DeploymentService interface {
	Create(ctx context.Context, employeeID uuid.UUID, dep *models.Deployment) (*models.Deployment, error)
	Get(ctx context.Context, id, employeeID uuid.UUID) (*models.Deployment, error)
	Update(ctx context.Context, id, employeeID uuid.UUID, dep *models.Deployment) (*models.Deployment, error)
	Patch(ctx context.Context, id, employeeID uuid.UUID, upd *models.DeploymentUpdate) (*models.Deployment, error)
	Delete(ctx context.Context, id, employeeID uuid.UUID) error
	List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) (models.Page[models.Deployment], error)
	ListByEnvironment(ctx context.Context, environment string, page pagination.Request) (models.Page[models.Deployment], error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Deployment], error)
	ListByHealth(ctx context.Context, health string, page pagination.Request) (models.Page[models.Deployment], error)
	ListByVersion(ctx context.Context, version string, page pagination.Request) (models.Page[models.Deployment], error)
}

type deploymentService struct {
	deploymentRepo repositories.DeploymentRepository
	employeeRepo   repositories.EmployeeRepository
	logger         *zap.Logger
}

// NewDeploymentService creates a new deployment service.
func NewDeploymentService(deploymentRepo repositories.DeploymentRepository, employeeRepo repositories.EmployeeRepository, logger *zap.Logger) DeploymentService {
	return &deploymentService{
		deploymentRepo: deploymentRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

// validProgress accepts a 1 to 3 digit numeric string, or blank.
func validProgress(progress string) bool {
	if progress == "" {
		return true
	}
	if len(progress) > 3 {
		return false
	}
	for _, r := range progress {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *deploymentService) validate(dep *models.Deployment) error {
	if strings.TrimSpace(dep.Name) == "" {
		return apperrors.Validationf("name is required")
	}
	if dep.Status != "" && !validEnum(dep.Status, models.DeploymentStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.DeploymentStatuses))
	}
	if dep.Health != "" && !validEnum(dep.Health, models.DeploymentHealths) {
		return apperrors.Validationf("health must be one of: %s", enumList(models.DeploymentHealths))
	}
	if !validProgress(dep.Progress) {
		return apperrors.Validationf("progress must be a numeric string of 1 to 3 digits")
	}
	return nil
}

// Create persists a new deployment owned by the given employee. The employee
// must exist.
func (s *deploymentService) Create(ctx context.Context, employeeID uuid.UUID, dep *models.Deployment) (*models.Deployment, error) {
	if err := s.validate(dep); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.Get(ctx, employeeID); err != nil {
		return nil, err
	}

	dep.EmployeeID = employeeID
	if dep.Status == "" {
		dep.Status = models.DeploymentStatusPending
	}
	if dep.Health == "" {
		dep.Health = models.DeploymentHealthUnknown
	}

	if err := s.deploymentRepo.Create(ctx, dep); err != nil {
		return nil, err
	}

	s.logger.Info("created deployment",
		zap.String("deployment_id", dep.ID.String()),
		zap.String("employee_id", employeeID.String()))
	return dep, nil
}

// Get retrieves a deployment by the combined (id, employee) key.
func (s *deploymentService) Get(ctx context.Context, id, employeeID uuid.UUID) (*models.Deployment, error) {
	return s.deploymentRepo.Get(ctx, id, employeeID)
}

// Update replaces all mutable fields of an owned deployment.
func (s *deploymentService) Update(ctx context.Context, id, employeeID uuid.UUID, dep *models.Deployment) (*models.Deployment, error) {
	if err := s.validate(dep); err != nil {
		return nil, err
	}

	existing, err := s.deploymentRepo.Get(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}

	existing.Name = dep.Name
	existing.Environment = dep.Environment
	if dep.Status != "" {
		existing.Status = dep.Status
	}
	existing.Version = dep.Version
	existing.DeployedAt = dep.DeployedAt
	existing.Branch = dep.Branch
	existing.CommitHash = dep.CommitHash
	if dep.Health != "" {
		existing.Health = dep.Health
	}
	existing.Progress = dep.Progress

	if err := s.deploymentRepo.Update(ctx, existing, employeeID); err != nil {
		return nil, err
	}
	return existing, nil
}

// Patch overwrites only the fields present in the update.
func (s *deploymentService) Patch(ctx context.Context, id, employeeID uuid.UUID, upd *models.DeploymentUpdate) (*models.Deployment, error) {
	existing, err := s.deploymentRepo.Get(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, apperrors.Validationf("name is required")
		}
		existing.Name = *upd.Name
	}
	if upd.Environment != nil {
		existing.Environment = *upd.Environment
	}
	if upd.Status != nil {
		if !validEnum(*upd.Status, models.DeploymentStatuses) {
			return nil, apperrors.Validationf("status must be one of: %s", enumList(models.DeploymentStatuses))
		}
		existing.Status = *upd.Status
	}
	if upd.Version != nil {
		existing.Version = *upd.Version
	}
	if upd.DeployedAt != nil {
		existing.DeployedAt = upd.DeployedAt
	}
	if upd.Branch != nil {
		existing.Branch = *upd.Branch
	}
	if upd.CommitHash != nil {
		existing.CommitHash = *upd.CommitHash
	}
	if upd.Health != nil {
		if !validEnum(*upd.Health, models.DeploymentHealths) {
			return nil, apperrors.Validationf("health must be one of: %s", enumList(models.DeploymentHealths))
		}
		existing.Health = *upd.Health
	}
	if upd.Progress != nil {
		if !validProgress(*upd.Progress) {
			return nil, apperrors.Validationf("progress must be a numeric string of 1 to 3 digits")
		}
		existing.Progress = *upd.Progress
	}

	if err := s.deploymentRepo.Update(ctx, existing, employeeID); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an owned deployment.
func (s *deploymentService) Delete(ctx context.Context, id, employeeID uuid.UUID) error {
	if err := s.deploymentRepo.Delete(ctx, id, employeeID); err != nil {
		return err
	}
	s.logger.Info("deleted deployment", zap.String("deployment_id", id.String()))
	return nil
}

// List returns a page of deployments owned by an employee.
func (s *deploymentService) List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) (models.Page[models.Deployment], error) {
	list, total, err := s.deploymentRepo.List(ctx, employeeID, page)
	if err != nil {
		return models.Page[models.Deployment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByEnvironment returns a page of deployments into one environment.
func (s *deploymentService) ListByEnvironment(ctx context.Context, environment string, page pagination.Request) (models.Page[models.Deployment], error) {
	list, total, err := s.deploymentRepo.ListByEnvironment(ctx, environment, page)
	if err != nil {
		return models.Page[models.Deployment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByStatus returns a page of deployments with one status.
func (s *deploymentService) ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Deployment], error) {
	if !validEnum(status, models.DeploymentStatuses) {
		return models.Page[models.Deployment]{}, apperrors.Validationf("status must be one of: %s", enumList(models.DeploymentStatuses))
	}
	list, total, err := s.deploymentRepo.ListByStatus(ctx, status, page)
	if err != nil {
		return models.Page[models.Deployment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByHealth returns a page of deployments with one health value.
func (s *deploymentService) ListByHealth(ctx context.Context, health string, page pagination.Request) (models.Page[models.Deployment], error) {
	if !validEnum(health, models.DeploymentHealths) {
		return models.Page[models.Deployment]{}, apperrors.Validationf("health must be one of: %s", enumList(models.DeploymentHealths))
	}
	list, total, err := s.deploymentRepo.ListByHealth(ctx, health, page)
	if err != nil {
		return models.Page[models.Deployment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByVersion returns a page of deployments of one version.
func (s *deploymentService) ListByVersion(ctx context.Context, version string, page pagination.Request) (models.Page[models.Deployment], error) {
	list, total, err := s.deploymentRepo.ListByVersion(ctx, version, page)
	if err != nil {
		return models.Page[models.Deployment]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ DeploymentService = (*deploymentService)(nil)
