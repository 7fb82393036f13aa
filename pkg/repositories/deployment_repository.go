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

// DeploymentRepository defines the interface for deployment data access.
// Deployments are owner-scoped: Get, Update and Delete match on the combined
// (id, employee_id) key. The filter lists are deliberately unscoped.
type DeploymentRepository interface {
	Create(ctx context.Context, dep *models.Deployment) error
	Get(ctx context.Context, id, employeeID uuid.UUID) (*models.Deployment, error)
	Update(ctx context.Context, dep *models.Deployment, employeeID uuid.UUID) error
	Delete(ctx context.Context, id, employeeID uuid.UUID) error
	List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) ([]models.Deployment, int64, error)
	ListByEnvironment(ctx context.Context, environment string, page pagination.Request) ([]models.Deployment, int64, error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Deployment, int64, error)
	ListByHealth(ctx context.Context, health string, page pagination.Request) ([]models.Deployment, int64, error)
	ListByVersion(ctx context.Context, version string, page pagination.Request) ([]models.Deployment, int64, error)
}

type deploymentRepository struct {
	db *database.DB
}

// NewDeploymentRepository creates a new deployment repository.
func NewDeploymentRepository(db *database.DB) DeploymentRepository {
	return &deploymentRepository{db: db}
}

const deploymentColumns = `id, name, environment, status, version, deployed_at, branch, commit_hash,
	health, progress, employee_id, created_at, updated_at`

func scanDeployment(row pgx.Row) (*models.Deployment, error) {
	var dep models.Deployment
	err := row.Scan(
		&dep.ID,
		&dep.Name,
		&dep.Environment,
		&dep.Status,
		&dep.Version,
		&dep.DeployedAt,
		&dep.Branch,
		&dep.CommitHash,
		&dep.Health,
		&dep.Progress,
		&dep.EmployeeID,
		&dep.CreatedAt,
		&dep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

// Create inserts a new deployment.
func (r *deploymentRepository) Create(ctx context.Context, dep *models.Deployment) error {
	if dep.ID == uuid.Nil {
		dep.ID = uuid.New()
	}
	now := time.Now()
	dep.CreatedAt = now
	dep.UpdatedAt = now

	query := `
		INSERT INTO deployments (id, name, environment, status, version, deployed_at, branch,
			commit_hash, health, progress, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		dep.ID,
		dep.Name,
		dep.Environment,
		dep.Status,
		dep.Version,
		dep.DeployedAt,
		dep.Branch,
		dep.CommitHash,
		dep.Health,
		dep.Progress,
		dep.EmployeeID,
		dep.CreatedAt,
		dep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deployment: %w", err)
	}
	return nil
}

// Get retrieves a deployment by the combined (id, employee) key.
func (r *deploymentRepository) Get(ctx context.Context, id, employeeID uuid.UUID) (*models.Deployment, error) {
	dep, err := scanDeployment(r.db.QueryRow(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE id = $1 AND employee_id = $2`,
		id, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deployment: %w", err)
	}
	return dep, nil
}

// Update overwrites all mutable fields of an owned deployment.
func (r *deploymentRepository) Update(ctx context.Context, dep *models.Deployment, employeeID uuid.UUID) error {
	dep.UpdatedAt = time.Now()

	query := `
		UPDATE deployments
		SET name = $2, environment = $3, status = $4, version = $5, deployed_at = $6, branch = $7,
			commit_hash = $8, health = $9, progress = $10, updated_at = $11
		WHERE id = $1 AND employee_id = $12`

	result, err := r.db.Exec(ctx, query,
		dep.ID,
		dep.Name,
		dep.Environment,
		dep.Status,
		dep.Version,
		dep.DeployedAt,
		dep.Branch,
		dep.CommitHash,
		dep.Health,
		dep.Progress,
		dep.UpdatedAt,
		employeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deployment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an owned deployment.
func (r *deploymentRepository) Delete(ctx context.Context, id, employeeID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM deployments WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete deployment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of deployments owned by an employee.
func (r *deploymentRepository) List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) ([]models.Deployment, int64, error) {
	return r.listWhere(ctx, ` WHERE employee_id = $1`, []any{employeeID}, page)
}

// ListByEnvironment returns a page of deployments into the named environment.
func (r *deploymentRepository) ListByEnvironment(ctx context.Context, environment string, page pagination.Request) ([]models.Deployment, int64, error) {
	return r.listWhere(ctx, ` WHERE environment = $1`, []any{environment}, page)
}

// ListByStatus returns a page of deployments with the given status.
func (r *deploymentRepository) ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Deployment, int64, error) {
	return r.listWhere(ctx, ` WHERE status = $1`, []any{status}, page)
}

// ListByHealth returns a page of deployments with the given health.
func (r *deploymentRepository) ListByHealth(ctx context.Context, health string, page pagination.Request) ([]models.Deployment, int64, error) {
	return r.listWhere(ctx, ` WHERE health = $1`, []any{health}, page)
}

// ListByVersion returns a page of deployments of the given version.
func (r *deploymentRepository) ListByVersion(ctx context.Context, version string, page pagination.Request) ([]models.Deployment, int64, error) {
	return r.listWhere(ctx, ` WHERE version = $1`, []any{version}, page)
}

func (r *deploymentRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.Deployment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM deployments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count deployments: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+deploymentColumns+` FROM deployments%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deployments: %w", err)
	}
	defer rows.Close()

	var list []models.Deployment
	for rows.Next() {
		dep, err := scanDeployment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan deployment: %w", err)
		}
		list = append(list, *dep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read deployments: %w", err)
	}
	return list, total, nil
}

var _ DeploymentRepository = (*deploymentRepository)(nil)
