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

// RoleRepository defines the interface for role data access.
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	Get(ctx context.Context, id uuid.UUID) (*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) ([]models.Role, int64, error)
}

type roleRepository struct {
	db *database.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *database.DB) RoleRepository {
	return &roleRepository{db: db}
}

func scanRole(row pgx.Row) (*models.Role, error) {
	var role models.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}

// Create inserts a new role.
func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO roles (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("role with name %s already exists", role.Name)
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// Get retrieves a role by ID.
func (r *roleRepository) Get(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := scanRole(r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// Update overwrites a role's name and description.
func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	role.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE roles SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		role.ID, role.Name, role.Description, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("role with name %s already exists", role.Name)
		}
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a role.
func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of all roles.
func (r *roleRepository) List(ctx context.Context, page pagination.Request) ([]models.Role, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count roles: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at FROM roles ORDER BY %s LIMIT %d OFFSET %d`,
		page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var list []models.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan role: %w", err)
		}
		list = append(list, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read roles: %w", err)
	}
	return list, total, nil
}

var _ RoleRepository = (*roleRepository)(nil)
