package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// IdeaService provides operations for managing ideas.
type IdeaService interface {
	Create(ctx context.Context, idea *models.Idea) (*models.Idea, error)
	Get(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) (*models.Idea, error)
	Update(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID, idea *models.Idea) (*models.Idea, error)
	Patch(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID, upd *models.IdeaUpdate) (*models.Idea, error)
	Delete(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error
	List(ctx context.Context, employeeID *uuid.UUID, page pagination.Request) (models.Page[models.Idea], error)
	ListByAssignee(ctx context.Context, assignee string, page pagination.Request) (models.Page[models.Idea], error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Idea], error)
	ListByTag(ctx context.Context, tag string, page pagination.Request) (models.Page[models.Idea], error)
}

type ideaService struct {
	ideaRepo     repositories.IdeaRepository
	employeeRepo repositories.EmployeeRepository
	logger       *zap.Logger
}

// NewIdeaService creates a new idea service.
func NewIdeaService(ideaRepo repositories.IdeaRepository, employeeRepo repositories.EmployeeRepository, logger *zap.Logger) IdeaService {
	return &ideaService{
		ideaRepo:     ideaRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *ideaService) validate(idea *models.Idea) error {
	if strings.TrimSpace(idea.Title) == "" {
		return apperrors.Validationf("title is required")
	}
	if idea.Priority != "" && !validEnum(idea.Priority, models.IdeaPriorities) {
		return apperrors.Validationf("priority must be one of: %s", enumList(models.IdeaPriorities))
	}
	if idea.Status != "" && !validEnum(idea.Status, models.IdeaStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.IdeaStatuses))
	}
	return nil
}

// resolveEmployee verifies a referenced employee exists.
func (s *ideaService) resolveEmployee(ctx context.Context, employeeID *uuid.UUID) error {
	if employeeID == nil {
		return nil
	}
	if _, err := s.employeeRepo.Get(ctx, *employeeID); err != nil {
		return err
	}
	return nil
}

// Create persists a new idea. The server assigns the id and creation date
// and zeroes the counters regardless of what the client sent.
func (s *ideaService) Create(ctx context.Context, idea *models.Idea) (*models.Idea, error) {
	if err := s.validate(idea); err != nil {
		return nil, err
	}
	if err := s.resolveEmployee(ctx, idea.EmployeeID); err != nil {
		return nil, err
	}

	idea.ID = uuid.New()
	idea.Upvotes = 0
	idea.Comments = 0
	if idea.Status == "" {
		idea.Status = models.IdeaStatusPending
	}
	if idea.CreatedDate == nil {
		now := time.Now()
		idea.CreatedDate = &now
	}
	idea.Tags = dedupeTags(idea.Tags)

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, err
	}

	s.logger.Info("created idea", zap.String("idea_id", idea.ID.String()), zap.String("title", idea.Title))
	return idea, nil
}

// Get retrieves an idea, scoped to the employee when one is given.
func (s *ideaService) Get(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) (*models.Idea, error) {
	return s.ideaRepo.Get(ctx, id, employeeID)
}

// Update replaces all mutable fields of an idea. The upvote counter is left
// alone; it only moves through likes.
func (s *ideaService) Update(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID, idea *models.Idea) (*models.Idea, error) {
	if err := s.validate(idea); err != nil {
		return nil, err
	}

	existing, err := s.ideaRepo.Get(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveEmployee(ctx, idea.EmployeeID); err != nil {
		return nil, err
	}

	existing.Title = idea.Title
	existing.Description = idea.Description
	existing.Priority = idea.Priority
	if idea.Status != "" {
		existing.Status = idea.Status
	}
	existing.AssignedTo = idea.AssignedTo
	existing.Comments = idea.Comments
	existing.DueDate = idea.DueDate
	existing.Tags = dedupeTags(idea.Tags)
	if idea.EmployeeID != nil {
		existing.EmployeeID = idea.EmployeeID
	}

	if err := s.ideaRepo.Update(ctx, existing, employeeID); err != nil {
		return nil, err
	}
	return existing, nil
}

// Patch overwrites only the fields present in the update.
func (s *ideaService) Patch(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID, upd *models.IdeaUpdate) (*models.Idea, error) {
	existing, err := s.ideaRepo.Get(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, apperrors.Validationf("title is required")
		}
		existing.Title = *upd.Title
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
	}
	if upd.Priority != nil {
		if *upd.Priority != "" && !validEnum(*upd.Priority, models.IdeaPriorities) {
			return nil, apperrors.Validationf("priority must be one of: %s", enumList(models.IdeaPriorities))
		}
		existing.Priority = *upd.Priority
	}
	if upd.Status != nil {
		if !validEnum(*upd.Status, models.IdeaStatuses) {
			return nil, apperrors.Validationf("status must be one of: %s", enumList(models.IdeaStatuses))
		}
		existing.Status = *upd.Status
	}
	if upd.AssignedTo != nil {
		existing.AssignedTo = *upd.AssignedTo
	}
	if upd.DueDate != nil {
		existing.DueDate = upd.DueDate
	}
	if upd.Tags != nil {
		existing.Tags = dedupeTags(upd.Tags)
	}

	if err := s.ideaRepo.Update(ctx, existing, employeeID); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an idea.
func (s *ideaService) Delete(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error {
	if err := s.ideaRepo.Delete(ctx, id, employeeID); err != nil {
		return err
	}
	s.logger.Info("deleted idea", zap.String("idea_id", id.String()))
	return nil
}

// List returns a page of ideas, scoped to the employee when one is given.
func (s *ideaService) List(ctx context.Context, employeeID *uuid.UUID, page pagination.Request) (models.Page[models.Idea], error) {
	ideas, total, err := s.ideaRepo.List(ctx, employeeID, page)
	if err != nil {
		return models.Page[models.Idea]{}, err
	}
	return models.NewPage(ideas, total, page.Page, page.Size), nil
}

// ListByAssignee returns a page of ideas assigned to the given name.
func (s *ideaService) ListByAssignee(ctx context.Context, assignee string, page pagination.Request) (models.Page[models.Idea], error) {
	ideas, total, err := s.ideaRepo.ListByAssignee(ctx, assignee, page)
	if err != nil {
		return models.Page[models.Idea]{}, err
	}
	return models.NewPage(ideas, total, page.Page, page.Size), nil
}

// ListByStatus returns a page of ideas with the given status.
func (s *ideaService) ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.Idea], error) {
	if !validEnum(status, models.IdeaStatuses) {
		return models.Page[models.Idea]{}, apperrors.Validationf("status must be one of: %s", enumList(models.IdeaStatuses))
	}
	ideas, total, err := s.ideaRepo.ListByStatus(ctx, status, page)
	if err != nil {
		return models.Page[models.Idea]{}, err
	}
	return models.NewPage(ideas, total, page.Page, page.Size), nil
}

// ListByTag returns a page of ideas carrying the given tag.
func (s *ideaService) ListByTag(ctx context.Context, tag string, page pagination.Request) (models.Page[models.Idea], error) {
	ideas, total, err := s.ideaRepo.ListByTag(ctx, tag, page)
	if err != nil {
		return models.Page[models.Idea]{}, err
	}
	return models.NewPage(ideas, total, page.Page, page.Size), nil
}

var _ IdeaService = (*ideaService)(nil)
