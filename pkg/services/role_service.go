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

// RoleService provides operations for managing roles.
type RoleService interface {
	Create(ctx context.Context, role *models.Role) (*models.Role, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Role, error)
	Update(ctx context.Context, id uuid.UUID, role *models.Role) (*models.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.Role], error)
}

type roleService struct {
	roleRepo repositories.RoleRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo repositories.RoleRepository, logger *zap.Logger) RoleService {
	return &roleService{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Create persists a new role. Name uniqueness is enforced by the store.
func (s *roleService) Create(ctx context.Context, role *models.Role) (*models.Role, error) {
	if strings.TrimSpace(role.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	s.logger.Info("created role", zap.String("role_id", role.ID.String()), zap.String("name", role.Name))
	return role, nil
}

// Get retrieves a role by ID.
func (s *roleService) Get(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	return s.roleRepo.Get(ctx, id)
}

// Update overwrites a role's name and description.
func (s *roleService) Update(ctx context.Context, id uuid.UUID, role *models.Role) (*models.Role, error) {
	if strings.TrimSpace(role.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}

	existing, err := s.roleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = role.Name
	existing.Description = role.Description
	if err := s.roleRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a role.
func (s *roleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted role", zap.String("role_id", id.String()))
	return nil
}

// List returns a page of all roles.
func (s *roleService) List(ctx context.Context, page pagination.Request) (models.Page[models.Role], error) {
	list, total, err := s.roleRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.Role]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ RoleService = (*roleService)(nil)
