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

// EndpointRepository defines the interface for API-endpoint data access.
type EndpointRepository interface {
	Create(ctx context.Context, e *models.ApiEndpoint) error
	Get(ctx context.Context, id uuid.UUID) (*models.ApiEndpoint, error)
	Update(ctx context.Context, e *models.ApiEndpoint) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) ([]models.ApiEndpoint, int64, error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.ApiEndpoint, int64, error)
	ListByMethod(ctx context.Context, method string, page pagination.Request) ([]models.ApiEndpoint, int64, error)
	ListByVersion(ctx context.Context, version string, page pagination.Request) ([]models.ApiEndpoint, int64, error)
}

type endpointRepository struct {
	db *database.DB
}

// NewEndpointRepository creates a new API-endpoint repository.
func NewEndpointRepository(db *database.DB) EndpointRepository {
	return &endpointRepository{db: db}
}

const endpointColumns = `id, name, method, path, status, version, last_tested, response_time_ms,
	employee_id, created_at, updated_at`

func scanEndpoint(row pgx.Row) (*models.ApiEndpoint, error) {
	var e models.ApiEndpoint
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Method,
		&e.Path,
		&e.Status,
		&e.Version,
		&e.LastTested,
		&e.ResponseTimeMs,
		&e.EmployeeID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new endpoint.
func (r *endpointRepository) Create(ctx context.Context, e *models.ApiEndpoint) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO api_endpoints (id, name, method, path, status, version, last_tested,
			response_time_ms, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.Name,
		e.Method,
		e.Path,
		e.Status,
		e.Version,
		e.LastTested,
		e.ResponseTimeMs,
		e.EmployeeID,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create endpoint: %w", err)
	}
	return nil
}

// Get retrieves an endpoint by ID.
func (r *endpointRepository) Get(ctx context.Context, id uuid.UUID) (*models.ApiEndpoint, error) {
	e, err := scanEndpoint(r.db.QueryRow(ctx, `SELECT `+endpointColumns+` FROM api_endpoints WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get endpoint: %w", err)
	}
	return e, nil
}

// Update overwrites all mutable fields of an endpoint.
func (r *endpointRepository) Update(ctx context.Context, e *models.ApiEndpoint) error {
	e.UpdatedAt = time.Now()

	query := `
		UPDATE api_endpoints
		SET name = $2, method = $3, path = $4, status = $5, version = $6, last_tested = $7,
			response_time_ms = $8, employee_id = $9, updated_at = $10
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		e.ID,
		e.Name,
		e.Method,
		e.Path,
		e.Status,
		e.Version,
		e.LastTested,
		e.ResponseTimeMs,
		e.EmployeeID,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update endpoint: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an endpoint and its test logs via CASCADE.
func (r *endpointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM api_endpoints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete endpoint: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of all endpoints.
func (r *endpointRepository) List(ctx context.Context, page pagination.Request) ([]models.ApiEndpoint, int64, error) {
	return r.listWhere(ctx, "", nil, page)
}

// ListByStatus returns a page of endpoints with the given status.
func (r *endpointRepository) ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.ApiEndpoint, int64, error) {
	return r.listWhere(ctx, ` WHERE status = $1`, []any{status}, page)
}

// ListByMethod returns a page of endpoints with the given HTTP method.
func (r *endpointRepository) ListByMethod(ctx context.Context, method string, page pagination.Request) ([]models.ApiEndpoint, int64, error) {
	return r.listWhere(ctx, ` WHERE method = $1`, []any{method}, page)
}

// ListByVersion returns a page of endpoints of the given version.
func (r *endpointRepository) ListByVersion(ctx context.Context, version string, page pagination.Request) ([]models.ApiEndpoint, int64, error) {
	return r.listWhere(ctx, ` WHERE version = $1`, []any{version}, page)
}

func (r *endpointRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.ApiEndpoint, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM api_endpoints`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count endpoints: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+endpointColumns+` FROM api_endpoints%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list endpoints: %w", err)
	}
	defer rows.Close()

	var list []models.ApiEndpoint
	for rows.Next() {
		e, err := scanEndpoint(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan endpoint: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read endpoints: %w", err)
	}
	return list, total, nil
}

var _ EndpointRepository = (*endpointRepository)(nil)
