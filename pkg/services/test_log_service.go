package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// TestLogService records and reads API test executions. Logs are
// insert-only.
type TestLogService interface {
	Create(ctx context.Context, log *models.ApiTestLog) (*models.ApiTestLog, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ApiTestLog, error)
	List(ctx context.Context, page pagination.Request) (models.Page[models.ApiTestLog], error)
	ListByEndpoint(ctx context.Context, endpointID uuid.UUID, page pagination.Request) (models.Page[models.ApiTestLog], error)
}

type testLogService struct {
	testLogRepo  repositories.TestLogRepository
	endpointRepo repositories.EndpointRepository
	logger       *zap.Logger
}

// NewTestLogService creates a new test-log service.
func NewTestLogService(testLogRepo repositories.TestLogRepository, endpointRepo repositories.EndpointRepository, logger *zap.Logger) TestLogService {
	return &testLogService{
		testLogRepo:  testLogRepo,
		endpointRepo: endpointRepo,
		logger:       logger,
	}
}

// Create records a test execution against an existing endpoint.
func (s *testLogService) Create(ctx context.Context, log *models.ApiTestLog) (*models.ApiTestLog, error) {
	if _, err := s.endpointRepo.Get(ctx, log.EndpointID); err != nil {
		return nil, err
	}
	if err := s.testLogRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	s.logger.Debug("recorded test log",
		zap.String("log_id", log.ID.String()),
		zap.String("endpoint_id", log.EndpointID.String()))
	return log, nil
}

// Get retrieves a test log by ID.
func (s *testLogService) Get(ctx context.Context, id uuid.UUID) (*models.ApiTestLog, error) {
	return s.testLogRepo.Get(ctx, id)
}

// List returns a page of all test logs.
func (s *testLogService) List(ctx context.Context, page pagination.Request) (models.Page[models.ApiTestLog], error) {
	list, total, err := s.testLogRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.ApiTestLog]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByEndpoint returns a page of one endpoint's test logs.
func (s *testLogService) ListByEndpoint(ctx context.Context, endpointID uuid.UUID, page pagination.Request) (models.Page[models.ApiTestLog], error) {
	list, total, err := s.testLogRepo.ListByEndpoint(ctx, endpointID, page)
	if err != nil {
		return models.Page[models.ApiTestLog]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ TestLogService = (*testLogService)(nil)
