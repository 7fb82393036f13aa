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

// IdeaRepository defines the interface for idea data access. Read and write
// operations optionally scope by the owning employee: a non-nil employeeID
// turns every lookup into a combined (id, employee_id) match.
type IdeaRepository interface {
	Create(ctx context.Context, idea *models.Idea) error
	Get(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) (*models.Idea, error)
	Update(ctx context.Context, idea *models.Idea, employeeID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error
	List(ctx context.Context, employeeID *uuid.UUID, page pagination.Request) ([]models.Idea, int64, error)
	ListByAssignee(ctx context.Context, assignee string, page pagination.Request) ([]models.Idea, int64, error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Idea, int64, error)
	ListByTag(ctx context.Context, tag string, page pagination.Request) ([]models.Idea, int64, error)
}

type ideaRepository struct {
	db *database.DB
}

// NewIdeaRepository creates a new idea repository.
func NewIdeaRepository(db *database.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

const ideaColumns = `id, title, description, priority, status, assigned_to, upvotes, comments,
	due_date, created_date, tags, employee_id, created_at, updated_at`

func scanIdea(row pgx.Row) (*models.Idea, error) {
	var idea models.Idea
	err := row.Scan(
		&idea.ID,
		&idea.Title,
		&idea.Description,
		&idea.Priority,
		&idea.Status,
		&idea.AssignedTo,
		&idea.Upvotes,
		&idea.Comments,
		&idea.DueDate,
		&idea.CreatedDate,
		&idea.Tags,
		&idea.EmployeeID,
		&idea.CreatedAt,
		&idea.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// Create inserts a new idea.
func (r *ideaRepository) Create(ctx context.Context, idea *models.Idea) error {
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	now := time.Now()
	idea.CreatedAt = now
	idea.UpdatedAt = now

	query := `
		INSERT INTO ideas (id, title, description, priority, status, assigned_to, upvotes, comments,
			due_date, created_date, tags, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(ctx, query,
		idea.ID,
		idea.Title,
		idea.Description,
		idea.Priority,
		idea.Status,
		idea.AssignedTo,
		idea.Upvotes,
		idea.Comments,
		idea.DueDate,
		idea.CreatedDate,
		idea.Tags,
		idea.EmployeeID,
		idea.CreatedAt,
		idea.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create idea: %w", err)
	}
	return nil
}

// Get retrieves an idea by ID, optionally scoped to an owning employee.
func (r *ideaRepository) Get(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) (*models.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE id = $1`
	args := []any{id}
	if employeeID != nil {
		query += ` AND employee_id = $2`
		args = append(args, *employeeID)
	}

	idea, err := scanIdea(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}
	return idea, nil
}

// Update overwrites all mutable fields of an idea. The upvote counter is
// excluded; it only moves through like transactions.
func (r *ideaRepository) Update(ctx context.Context, idea *models.Idea, employeeID *uuid.UUID) error {
	idea.UpdatedAt = time.Now()

	query := `
		UPDATE ideas
		SET title = $2, description = $3, priority = $4, status = $5, assigned_to = $6,
			comments = $7, due_date = $8, tags = $9, employee_id = $10, updated_at = $11
		WHERE id = $1`
	args := []any{
		idea.ID,
		idea.Title,
		idea.Description,
		idea.Priority,
		idea.Status,
		idea.AssignedTo,
		idea.Comments,
		idea.DueDate,
		idea.Tags,
		idea.EmployeeID,
		idea.UpdatedAt,
	}
	if employeeID != nil {
		query += ` AND employee_id = $12`
		args = append(args, *employeeID)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update idea: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an idea. Likes referencing it are removed via CASCADE.
func (r *ideaRepository) Delete(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error {
	query := `DELETE FROM ideas WHERE id = $1`
	args := []any{id}
	if employeeID != nil {
		query += ` AND employee_id = $2`
		args = append(args, *employeeID)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of ideas, optionally scoped to an owning employee.
func (r *ideaRepository) List(ctx context.Context, employeeID *uuid.UUID, page pagination.Request) ([]models.Idea, int64, error) {
	where, args := "", []any{}
	if employeeID != nil {
		where = ` WHERE employee_id = $1`
		args = append(args, *employeeID)
	}
	return r.listWhere(ctx, where, args, page)
}

// ListByAssignee returns a page of ideas assigned to the given name.
func (r *ideaRepository) ListByAssignee(ctx context.Context, assignee string, page pagination.Request) ([]models.Idea, int64, error) {
	return r.listWhere(ctx, ` WHERE assigned_to = $1`, []any{assignee}, page)
}

// ListByStatus returns a page of ideas with the given status.
func (r *ideaRepository) ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Idea, int64, error) {
	return r.listWhere(ctx, ` WHERE status = $1`, []any{status}, page)
}

// ListByTag returns a page of ideas carrying the given tag.
func (r *ideaRepository) ListByTag(ctx context.Context, tag string, page pagination.Request) ([]models.Idea, int64, error) {
	return r.listWhere(ctx, ` WHERE $1 = ANY(tags)`, []any{tag}, page)
}

func (r *ideaRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.Idea, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ideas`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ideas: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+ideaColumns+` FROM ideas%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []models.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read ideas: %w", err)
	}
	return ideas, total, nil
}

var _ IdeaRepository = (*ideaRepository)(nil)
