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

// EndpointService provides operations for the API endpoint catalog.
type EndpointService interface {
	Create(ctx context.Context, e *models.ApiEndpoint) (*models.ApiEndpoint, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ApiEndpoint, error)
	Update(ctx context.Context, id uuid.UUID, e *models.ApiEndpoint) (*models.ApiEndpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.ApiEndpoint], error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.ApiEndpoint], error)
	ListByMethod(ctx context.Context, method string, page pagination.Request) (models.Page[models.ApiEndpoint], error)
	ListByVersion(ctx context.Context, version string, page pagination.Request) (models.Page[models.ApiEndpoint], error)
}

type endpointService struct {
	endpointRepo repositories.EndpointRepository
	employeeRepo repositories.EmployeeRepository
	logger       *zap.Logger
}

// NewEndpointService creates a new endpoint service.
func NewEndpointService(endpointRepo repositories.EndpointRepository, employeeRepo repositories.EmployeeRepository, logger *zap.Logger) EndpointService {
	return &endpointService{
		endpointRepo: endpointRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *endpointService) validate(e *models.ApiEndpoint) error {
	if strings.TrimSpace(e.Name) == "" {
		return apperrors.Validationf("name is required")
	}
	if strings.TrimSpace(e.Path) == "" {
		return apperrors.Validationf("path is required")
	}
	if e.Method != "" && !validEnum(e.Method, models.EndpointMethods) {
		return apperrors.Validationf("method must be one of: %s", enumList(models.EndpointMethods))
	}
	if e.Status != "" && !validEnum(e.Status, models.EndpointStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.EndpointStatuses))
	}
	return nil
}

// Create persists a new endpoint, resolving the owning employee when one is
// referenced.
func (s *endpointService) Create(ctx context.Context, e *models.ApiEndpoint) (*models.ApiEndpoint, error) {
	if err := s.validate(e); err != nil {
		return nil, err
	}
	if e.EmployeeID != nil {
		if _, err := s.employeeRepo.Get(ctx, *e.EmployeeID); err != nil {
			return nil, err
		}
	}

	if e.Method == "" {
		e.Method = models.EndpointMethodGet
	}
	if e.Status == "" {
		e.Status = models.EndpointStatusNotStarted
	}

	if err := s.endpointRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("created endpoint",
		zap.String("endpoint_id", e.ID.String()),
		zap.String("method", e.Method),
		zap.String("path", e.Path))
	return e, nil
}

// Get retrieves an endpoint by ID.
func (s *endpointService) Get(ctx context.Context, id uuid.UUID) (*models.ApiEndpoint, error) {
	return s.endpointRepo.Get(ctx, id)
}

// Update replaces all mutable fields of an endpoint.
func (s *endpointService) Update(ctx context.Context, id uuid.UUID, e *models.ApiEndpoint) (*models.ApiEndpoint, error) {
	if err := s.validate(e); err != nil {
		return nil, err
	}

	existing, err := s.endpointRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.EmployeeID != nil {
		if _, err := s.employeeRepo.Get(ctx, *e.EmployeeID); err != nil {
			return nil, err
		}
		existing.EmployeeID = e.EmployeeID
	}

	existing.Name = e.Name
	if e.Method != "" {
		existing.Method = e.Method
	}
	existing.Path = e.Path
	if e.Status != "" {
		existing.Status = e.Status
	}
	existing.Version = e.Version
	existing.LastTested = e.LastTested
	existing.ResponseTimeMs = e.ResponseTimeMs

	if err := s.endpointRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an endpoint and its test logs.
func (s *endpointService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.endpointRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted endpoint", zap.String("endpoint_id", id.String()))
	return nil
}

// List returns a page of all endpoints.
func (s *endpointService) List(ctx context.Context, page pagination.Request) (models.Page[models.ApiEndpoint], error) {
	list, total, err := s.endpointRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.ApiEndpoint]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByStatus returns a page of endpoints with one status.
func (s *endpointService) ListByStatus(ctx context.Context, status string, page pagination.Request) (models.Page[models.ApiEndpoint], error) {
	if !validEnum(status, models.EndpointStatuses) {
		return models.Page[models.ApiEndpoint]{}, apperrors.Validationf("status must be one of: %s", enumList(models.EndpointStatuses))
	}
	list, total, err := s.endpointRepo.ListByStatus(ctx, status, page)
	if err != nil {
		return models.Page[models.ApiEndpoint]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByMethod returns a page of endpoints with one HTTP method.
func (s *endpointService) ListByMethod(ctx context.Context, method string, page pagination.Request) (models.Page[models.ApiEndpoint], error) {
	method = strings.ToUpper(method)
	if !validEnum(method, models.EndpointMethods) {
		return models.Page[models.ApiEndpoint]{}, apperrors.Validationf("method must be one of: %s", enumList(models.EndpointMethods))
	}
	list, total, err := s.endpointRepo.ListByMethod(ctx, method, page)
	if err != nil {
		return models.Page[models.ApiEndpoint]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByVersion returns a page of endpoints of one version.
func (s *endpointService) ListByVersion(ctx context.Context, version string, page pagination.Request) (models.Page[models.ApiEndpoint], error) {
	list, total, err := s.endpointRepo.ListByVersion(ctx, version, page)
	if err != nil {
		return models.Page[models.ApiEndpoint]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ EndpointService = (*endpointService)(nil)
