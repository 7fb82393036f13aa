package services

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
	"github.com/ideahub-inc/ideahub-engine/pkg/storage"
)

// FileUpload is an incoming multipart file part.
type FileUpload struct {
	Reader      io.Reader
	Name        string
	ContentType string
}

// EvidenceInput carries the multipart form fields for creating or replacing
// evidence. File is nil when no file part was sent.
type EvidenceInput struct {
	Title       string
	Description string
	Type        string
	Category    string
	URL         string
	Tags        []string
	ProjectID   uuid.UUID
	UploadedBy  uuid.UUID
	IdeaID      *uuid.UUID
	File        *FileUpload
}

// EvidenceService provides operations for managing evidence attachments,
// including the upload pipeline.
type EvidenceService interface {
	Create(ctx context.Context, in *EvidenceInput) (*models.Evidence, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Evidence, error)
	Update(ctx context.Context, id uuid.UUID, in *EvidenceInput) (*models.Evidence, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Evidence, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.Evidence], error)
	ListByProject(ctx context.Context, projectID uuid.UUID, page pagination.Request) (models.Page[models.Evidence], error)
	ListByProjectAndCategory(ctx context.Context, projectID uuid.UUID, category string) ([]models.Evidence, error)
	ListByProjectAndTag(ctx context.Context, projectID uuid.UUID, tag string) ([]models.Evidence, error)
	ListByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) ([]models.Evidence, error)
}

type evidenceService struct {
	evidenceRepo repositories.EvidenceRepository
	projectRepo  repositories.ProjectRepository
	userRepo     repositories.UserRepository
	ideaRepo     repositories.IdeaRepository
	files        *storage.FileStore
	logger       *zap.Logger
}

// NewEvidenceService creates a new evidence service.
func NewEvidenceService(
	evidenceRepo repositories.EvidenceRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	ideaRepo repositories.IdeaRepository,
	files *storage.FileStore,
	logger *zap.Logger,
) EvidenceService {
	return &evidenceService{
		evidenceRepo: evidenceRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		ideaRepo:     ideaRepo,
		files:        files,
		logger:       logger,
	}
}

// validate checks the form fields and referenced resources, in a fixed
// order so clients get stable error messages: fields first, then
// references, then the type-conditional requirements.
func (s *evidenceService) validate(ctx context.Context, in *EvidenceInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Validationf("title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return apperrors.Validationf("category is required")
	}
	if in.Type == "" {
		in.Type = models.EvidenceTypeFile
	}
	if !validEnum(in.Type, models.EvidenceTypes) {
		return apperrors.Validationf("type must be one of: %s", enumList(models.EvidenceTypes))
	}

	if _, err := s.projectRepo.Get(ctx, in.ProjectID); err != nil {
		return err
	}
	if _, err := s.userRepo.Get(ctx, in.UploadedBy); err != nil {
		return err
	}
	if in.IdeaID != nil {
		if _, err := s.ideaRepo.Get(ctx, *in.IdeaID, nil); err != nil {
			return err
		}
	}

	switch in.Type {
	case models.EvidenceTypeFile:
		if in.File == nil {
			return apperrors.Validationf("a file is required for FILE evidence")
		}
	case models.EvidenceTypeLink:
		if strings.TrimSpace(in.URL) == "" {
			return apperrors.Validationf("url is required for LINK evidence")
		}
	}
	return nil
}

// Create validates the input, stores the file when one was sent and persists
// the evidence row.
func (s *evidenceService) Create(ctx context.Context, in *EvidenceInput) (*models.Evidence, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	ev := &models.Evidence{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
		Status:      models.EvidenceStatusPending,
		URL:         in.URL,
		Tags:        dedupeTags(in.Tags),
		ProjectID:   in.ProjectID,
		UploadedBy:  in.UploadedBy,
		IdeaID:      in.IdeaID,
	}

	if in.File != nil {
		stored, err := s.files.Save(in.File.Reader, in.File.Name, in.File.ContentType)
		if err != nil {
			return nil, err
		}
		ev.FileName = stored.Name
		ev.FilePath = stored.Path
		ev.ContentType = stored.ContentType
		ev.FileSize = stored.Size
	}

	if err := s.evidenceRepo.Create(ctx, ev); err != nil {
		// Row insert failed after the file landed on disk; clean it up.
		if ev.FilePath != "" {
			if rerr := s.files.Remove(ev.FilePath); rerr != nil {
				s.logger.Warn("failed to remove orphaned evidence file",
					zap.String("path", ev.FilePath), zap.Error(rerr))
			}
		}
		return nil, err
	}

	s.logger.Info("created evidence",
		zap.String("evidence_id", ev.ID.String()),
		zap.String("type", ev.Type),
		zap.String("project_id", ev.ProjectID.String()))
	return ev, nil
}

// Get retrieves evidence by ID.
func (s *evidenceService) Get(ctx context.Context, id uuid.UUID) (*models.Evidence, error) {
	return s.evidenceRepo.Get(ctx, id)
}

// Update replaces all mutable fields. A newly sent file takes the place of
// the old one; the previous file stays on disk and is only logged, matching
// the replace semantics clients rely on for concurrent readers. Changing the
// type away from FILE clears the file metadata.
func (s *evidenceService) Update(ctx context.Context, id uuid.UUID, in *EvidenceInput) (*models.Evidence, error) {
	existing, err := s.evidenceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// A FILE-typed update may keep its already-stored file, so the file
	// part is only mandatory when there is nothing on record.
	if in.Type == "" {
		in.Type = models.EvidenceTypeFile
	}
	if in.File == nil && in.Type == models.EvidenceTypeFile && existing.FilePath != "" {
		if err := s.validateUpdateKeepingFile(ctx, in); err != nil {
			return nil, err
		}
	} else if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Type = in.Type
	existing.Category = in.Category
	existing.URL = in.URL
	existing.Tags = dedupeTags(in.Tags)
	existing.ProjectID = in.ProjectID
	existing.UploadedBy = in.UploadedBy
	existing.IdeaID = in.IdeaID

	if in.File != nil {
		stored, err := s.files.Save(in.File.Reader, in.File.Name, in.File.ContentType)
		if err != nil {
			return nil, err
		}
		if existing.FilePath != "" {
			s.logger.Info("replaced evidence file, previous copy retained",
				zap.String("evidence_id", id.String()),
				zap.String("old_path", existing.FilePath))
		}
		existing.FileName = stored.Name
		existing.FilePath = stored.Path
		existing.ContentType = stored.ContentType
		existing.FileSize = stored.Size
	}

	if existing.Type != models.EvidenceTypeFile && existing.Type != models.EvidenceTypeImage {
		existing.FileName = ""
		existing.FilePath = ""
		existing.ContentType = ""
		existing.FileSize = 0
	}

	if err := s.evidenceRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// validateUpdateKeepingFile runs the Create validation minus the file-part
// requirement, for FILE updates that keep the stored file.
func (s *evidenceService) validateUpdateKeepingFile(ctx context.Context, in *EvidenceInput) error {
	saved := in.Type
	in.Type = models.EvidenceTypeText
	err := s.validate(ctx, in)
	in.Type = saved
	return err
}

// UpdateStatus changes only the status.
func (s *evidenceService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Evidence, error) {
	if !validEnum(status, models.EvidenceStatuses) {
		return nil, apperrors.Validationf("status must be one of: %s", enumList(models.EvidenceStatuses))
	}
	if err := s.evidenceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.evidenceRepo.Get(ctx, id)
}

// Delete removes the row and then the stored file. A failed file removal is
// logged, not propagated; the row is already gone.
func (s *evidenceService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.evidenceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.evidenceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.FilePath != "" {
		if err := s.files.Remove(existing.FilePath); err != nil {
			s.logger.Warn("failed to remove evidence file",
				zap.String("evidence_id", id.String()),
				zap.String("path", existing.FilePath),
				zap.Error(err))
		}
	}
	s.logger.Info("deleted evidence", zap.String("evidence_id", id.String()))
	return nil
}

// List returns a page of all evidence.
func (s *evidenceService) List(ctx context.Context, page pagination.Request) (models.Page[models.Evidence], error) {
	list, total, err := s.evidenceRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.Evidence]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByProject returns a page of a project's evidence.
func (s *evidenceService) ListByProject(ctx context.Context, projectID uuid.UUID, page pagination.Request) (models.Page[models.Evidence], error) {
	list, total, err := s.evidenceRepo.ListByProject(ctx, projectID, page)
	if err != nil {
		return models.Page[models.Evidence]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByProjectAndCategory returns a project's evidence in one category.
func (s *evidenceService) ListByProjectAndCategory(ctx context.Context, projectID uuid.UUID, category string) ([]models.Evidence, error) {
	return s.evidenceRepo.ListByProjectAndCategory(ctx, projectID, category)
}

// ListByProjectAndTag returns a project's evidence carrying one tag.
func (s *evidenceService) ListByProjectAndTag(ctx context.Context, projectID uuid.UUID, tag string) ([]models.Evidence, error) {
	return s.evidenceRepo.ListByProjectAndTag(ctx, projectID, tag)
}

// ListByProjectAndStatus returns a project's evidence with one status.
func (s *evidenceService) ListByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) ([]models.Evidence, error) {
	if !validEnum(status, models.EvidenceStatuses) {
		return nil, apperrors.Validationf("status must be one of: %s", enumList(models.EvidenceStatuses))
	}
	return s.evidenceRepo.ListByProjectAndStatus(ctx, projectID, status)
}

var _ EvidenceService = (*evidenceService)(nil)
