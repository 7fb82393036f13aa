package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// TagService provides operations for the tag catalog.
type TagService interface {
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Update(ctx context.Context, id uuid.UUID, tag *models.Tag) (*models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repositories.TagRepository, logger *zap.Logger) TagService {
	return &tagService{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// Create adds a tag to the catalog.
func (s *tagService) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	s.logger.Info("created tag", zap.String("tag_id", tag.ID.String()), zap.String("name", tag.Name))
	return tag, nil
}

// Get retrieves a tag by ID.
func (s *tagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.tagRepo.Get(ctx, id)
}

// Update renames a tag.
func (s *tagService) Update(ctx context.Context, id uuid.UUID, tag *models.Tag) (*models.Tag, error) {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return nil, apperrors.Validationf("name is required")
	}

	existing, err := s.tagRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = tag.Name
	if err := s.tagRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a tag from the catalog.
func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tagRepo.Delete(ctx, id)
}

// List returns the whole catalog.
func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

var _ TagService = (*tagService)(nil)
