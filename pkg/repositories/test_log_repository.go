package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/database"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
)

// TestLogRepository defines the interface for API test-log data access.
// Logs are insert-only.
type TestLogRepository interface {
	Create(ctx context.Context, log *models.ApiTestLog) error
	Get(ctx context.Context, id uuid.UUID) (*models.ApiTestLog, error)
	List(ctx context.Context, page pagination.Request) ([]models.ApiTestLog, int64, error)
	ListByEndpoint(ctx context.Context, endpointID uuid.UUID, page pagination.Request) ([]models.ApiTestLog, int64, error)
}

type testLogRepository struct {
	db *database.DB
}

// NewTestLogRepository creates a new test-log repository.
func NewTestLogRepository(db *database.DB) TestLogRepository {
	return &testLogRepository{db: db}
}

const testLogColumns = `id, endpoint_id, request_method, request_path, request_body, response_body, executed_at`

func scanTestLog(row pgx.Row) (*models.ApiTestLog, error) {
	var log models.ApiTestLog
	err := row.Scan(
		&log.ID,
		&log.EndpointID,
		&log.RequestMethod,
		&log.RequestPath,
		&log.RequestBody,
		&log.ResponseBody,
		&log.ExecutedAt,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Create inserts a new test log.
func (r *testLogRepository) Create(ctx context.Context, log *models.ApiTestLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.ExecutedAt.IsZero() {
		log.ExecutedAt = time.Now()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO api_test_logs (id, endpoint_id, request_method, request_path, request_body, response_body, executed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, log.EndpointID, log.RequestMethod, log.RequestPath, log.RequestBody, log.ResponseBody, log.ExecutedAt)
	if err != nil {
		return fmt.Errorf("failed to create test log: %w", err)
	}
	return nil
}

// Get retrieves a test log by ID.
func (r *testLogRepository) Get(ctx context.Context, id uuid.UUID) (*models.ApiTestLog, error) {
	log, err := scanTestLog(r.db.QueryRow(ctx, `SELECT `+testLogColumns+` FROM api_test_logs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get test log: %w", err)
	}
	return log, nil
}

// List returns a page of all test logs.
func (r *testLogRepository) List(ctx context.Context, page pagination.Request) ([]models.ApiTestLog, int64, error) {
	return r.listWhere(ctx, "", nil, page)
}

// ListByEndpoint returns a page of test logs for one endpoint.
func (r *testLogRepository) ListByEndpoint(ctx context.Context, endpointID uuid.UUID, page pagination.Request) ([]models.ApiTestLog, int64, error) {
	return r.listWhere(ctx, ` WHERE endpoint_id = $1`, []any{endpointID}, page)
}

func (r *testLogRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.ApiTestLog, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM api_test_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count test logs: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+testLogColumns+` FROM api_test_logs%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list test logs: %w", err)
	}
	defer rows.Close()

	var list []models.ApiTestLog
	for rows.Next() {
		log, err := scanTestLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan test log: %w", err)
		}
		list = append(list, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read test logs: %w", err)
	}
	return list, total, nil
}

var _ TestLogRepository = (*testLogRepository)(nil)
