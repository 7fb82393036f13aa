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

// TrackerService provides operations for managing database trackers.
// Id-keyed operations are owner-scoped; the name/status/version reads are
// deliberately unscoped.
type TrackerService interface {
	Create(ctx context.Context, employeeID uuid.UUID, t *models.DatabaseTracker) (*models.DatabaseTracker, error)
	Get(ctx context.Context, id int64, employeeID uuid.UUID) (*models.DatabaseTracker, error)
	GetByName(ctx context.Context, name string) (*models.DatabaseTracker, error)
	Update(ctx context.Context, id int64, employeeID uuid.UUID, t *models.DatabaseTracker) (*models.DatabaseTracker, error)
	UpdateStatus(ctx context.Context, id int64, employeeID uuid.UUID, status string) (*models.DatabaseTracker, error)
	Delete(ctx context.Context, id int64, employeeID uuid.UUID) error
	List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) (models.Page[models.DatabaseTracker], error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.DatabaseTracker], error)
	ListByVersion(ctx context.Context, version string, page pagination.Request) (models.Page[models.DatabaseTracker], error)
}

type trackerService struct {
	trackerRepo  repositories.TrackerRepository
	employeeRepo repositories.EmployeeRepository
	logger       *zap.Logger
}

// NewTrackerService creates a new database-tracker service.
func NewTrackerService(trackerRepo repositories.TrackerRepository, employeeRepo repositories.EmployeeRepository, logger *zap.Logger) TrackerService {
	return &trackerService{
		trackerRepo:  trackerRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *trackerService) validate(t *models.DatabaseTracker) error {
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.Validationf("name is required")
	}
	if t.Status != "" && !validEnum(t.Status, models.TrackerStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.TrackerStatuses))
	}
	return nil
}

// Create persists a new tracker owned by the given employee, checking name
// uniqueness first.
func (s *trackerService) Create(ctx context.Context, employeeID uuid.UUID, t *models.DatabaseTracker) (*models.DatabaseTracker, error) {
	if err := s.validate(t); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.Get(ctx, employeeID); err != nil {
		return nil, err
	}

	exists, err := s.trackerRepo.ExistsByName(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Duplicatef("database tracker with name %s already exists", t.Name)
	}

	t.EmployeeID = employeeID
	if t.Status == "" {
		t.Status = models.TrackerStatusCreated
	}
	if t.MigrationsJSON == "" {
		t.MigrationsJSON = "[]"
	}

	if err := s.trackerRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("created database tracker", zap.Int64("tracker_id", t.ID), zap.String("name", t.Name))
	return t, nil
}

// Get retrieves a tracker by the combined (id, employee) key.
func (s *trackerService) Get(ctx context.Context, id int64, employeeID uuid.UUID) (*models.DatabaseTracker, error) {
	return s.trackerRepo.Get(ctx, id, employeeID)
}

// GetByName retrieves a tracker by its unique name.
func (s *trackerService) GetByName(ctx context.Context, name string) (*models.DatabaseTracker, error) {
	return s.trackerRepo.GetByName(ctx, name)
}

// Update replaces all mutable fields of an owned tracker. Name uniqueness is
// only checked when the name changed.
func (s *trackerService) Update(ctx context.Context, id int64, employeeID uuid.UUID, t *models.DatabaseTracker) (*models.DatabaseTracker, error) {
	if err := s.validate(t); err != nil {
		return nil, err
	}

	existing, err := s.trackerRepo.Get(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}

	if t.Name != existing.Name {
		exists, err := s.trackerRepo.ExistsByName(ctx, t.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Duplicatef("database tracker with name %s already exists", t.Name)
		}
	}

	existing.Name = t.Name
	existing.Version = t.Version
	if t.Status != "" {
		existing.Status = t.Status
	}
	existing.TablesCount = t.TablesCount
	existing.MigrationsCount = t.MigrationsCount
	if t.MigrationsJSON != "" {
		existing.MigrationsJSON = t.MigrationsJSON
	}

	if err := s.trackerRepo.Update(ctx, existing, employeeID); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdateStatus changes only the status, refreshing last_modified.
func (s *trackerService) UpdateStatus(ctx context.Context, id int64, employeeID uuid.UUID, status string) (*models.DatabaseTracker, error) {
	if !validEnum(status, models.TrackerStatuses) {
		return nil, apperrors.Validationf("status must be one of: %s", enumList(models.TrackerStatuses))
	}
	return s.trackerRepo.UpdateStatus(ctx, id, employeeID, status)
}

// Delete removes an owned tracker.
func (s *trackerService) Delete(ctx context.Context, id int64, employeeID uuid.UUID) error {
	if err := s.trackerRepo.Delete(ctx, id, employeeID); err != nil {
		return err
	}
	s.logger.Info("deleted database tracker", zap.Int64("tracker_id", id))
	return nil
}

// List returns a page of trackers owned by an employee.
func (s *trackerService) List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) (models.Page[models.DatabaseTracker], error) {
	list, total, err := s.trackerRepo.List(ctx, employeeID, page)
	if err != nil {
		return models.Page[models.DatabaseTracker]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByStatus returns a page of trackers with the given status.
func (s *trackerService) ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.DatabaseTracker], error) {
	if !validEnum(status, models.TrackerStatuses) {
		return models.Page[models.DatabaseTracker]{}, apperrors.Validationf("status must be one of: %s", enumList(models.TrackerStatuses))
	}
	list, total, err := s.trackerRepo.ListByStatus(ctx, status, page)
	if err != nil {
		return models.Page[models.DatabaseTracker]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByVersion returns a page of trackers of the given version.
func (s *trackerService) ListByVersion(ctx context.Context, version string, page pagination.Request) (models.Page[models.DatabaseTracker], error) {
	list, total, err := s.trackerRepo.ListByVersion(ctx, version, page)
	if err != nil {
		return models.Page[models.DatabaseTracker]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ TrackerService = (*trackerService)(nil)
