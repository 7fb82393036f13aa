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

// EnvironmentRepository defines the interface for environment data access.
type EnvironmentRepository interface {
	Create(ctx context.Context, env *models.Environment) error
	Get(ctx context.Context, id uuid.UUID) (*models.Environment, error)
	GetByName(ctx context.Context, name string) (*models.Environment, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, env *models.Environment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) ([]models.Environment, int64, error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Environment, int64, error)
}

type environmentRepository struct {
	db *database.DB
}

// NewEnvironmentRepository creates a new environment repository.
func NewEnvironmentRepository(db *database.DB) EnvironmentRepository {
	return &environmentRepository{db: db}
}

const environmentColumns = `id, name, status, deployments_count, last_update, employee_id, created_at, updated_at`

func scanEnvironment(row pgx.Row) (*models.Environment, error) {
	var env models.Environment
	err := row.Scan(
		&env.ID,
		&env.Name,
		&env.Status,
		&env.DeploymentsCount,
		&env.LastUpdate,
		&env.EmployeeID,
		&env.CreatedAt,
		&env.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// Create inserts a new environment.
func (r *environmentRepository) Create(ctx context.Context, env *models.Environment) error {
	if env.ID == uuid.Nil {
		env.ID = uuid.New()
	}
	now := time.Now()
	env.CreatedAt = now
	env.UpdatedAt = now

	query := `
		INSERT INTO environments (id, name, status, deployments_count, last_update, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		env.ID,
		env.Name,
		env.Status,
		env.DeploymentsCount,
		env.LastUpdate,
		env.EmployeeID,
		env.CreatedAt,
		env.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("environment with name %s already exists", env.Name)
		}
		return fmt.Errorf("failed to create environment: %w", err)
	}
	return nil
}

// Get retrieves an environment by ID.
func (r *environmentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Environment, error) {
	env, err := scanEnvironment(r.db.QueryRow(ctx, `SELECT `+environmentColumns+` FROM environments WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get environment: %w", err)
	}
	return env, nil
}

// GetByName retrieves an environment by its unique name.
func (r *environmentRepository) GetByName(ctx context.Context, name string) (*models.Environment, error) {
	env, err := scanEnvironment(r.db.QueryRow(ctx, `SELECT `+environmentColumns+` FROM environments WHERE name = $1`, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get environment by name: %w", err)
	}
	return env, nil
}

// ExistsByName reports whether an environment with the name exists.
func (r *environmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM environments WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check environment name: %w", err)
	}
	return exists, nil
}

// Update overwrites all mutable fields of an environment.
func (r *environmentRepository) Update(ctx context.Context, env *models.Environment) error {
	env.UpdatedAt = time.Now()

	query := `
		UPDATE environments
		SET name = $2, status = $3, deployments_count = $4, last_update = $5, employee_id = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		env.ID,
		env.Name,
		env.Status,
		env.DeploymentsCount,
		env.LastUpdate,
		env.EmployeeID,
		env.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("environment with name %s already exists", env.Name)
		}
		return fmt.Errorf("failed to update environment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an environment.
func (r *environmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM environments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete environment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of all environments.
func (r *environmentRepository) List(ctx context.Context, page pagination.Request) ([]models.Environment, int64, error) {
	return r.listWhere(ctx, "", nil, page)
}

// ListByStatus returns a page of environments with the given status.
func (r *environmentRepository) ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Environment, int64, error) {
	return r.listWhere(ctx, ` WHERE status = $1`, []any{status}, page)
}

func (r *environmentRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.Environment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM environments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count environments: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+environmentColumns+` FROM environments%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list environments: %w", err)
	}
	defer rows.Close()

	var list []models.Environment
	for rows.Next() {
		env, err := scanEnvironment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan environment: %w", err)
		}
		list = append(list, *env)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read environments: %w", err)
	}
	return list, total, nil
}

var _ EnvironmentRepository = (*environmentRepository)(nil)
