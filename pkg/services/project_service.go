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

// ProjectService provides operations for managing projects.
type ProjectService interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.Project], error)
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	logger      *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo repositories.ProjectRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create persists a new project. Name uniqueness is enforced by the store.
func (s *projectService) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("created project", zap.String("project_id", project.ID.String()), zap.String("name", project.Name))
	return project, nil
}

// Get retrieves a project by ID.
func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projectRepo.Get(ctx, id)
}

// Update renames a project.
func (s *projectService) Update(ctx context.Context, id uuid.UUID, project *models.Project) (*models.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}

	existing, err := s.projectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = project.Name
	if err := s.projectRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a project and its evidence.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted project", zap.String("project_id", id.String()))
	return nil
}

// List returns a page of all projects.
func (s *projectService) List(ctx context.Context, page pagination.Request) (models.Page[models.Project], error) {
	list, total, err := s.projectRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.Project]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ ProjectService = (*projectService)(nil)
