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
)

// TagRepository defines the interface for tag catalog data access. The list
// endpoint is unpaged; the catalog stays small.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	Get(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Tag, error)
}

type tagRepository struct {
	db *database.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *database.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create inserts a new tag.
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	now := time.Now()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO tags (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("tag with name %s already exists", tag.Name)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Get retrieves a tag by ID.
func (r *tagRepository) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`, id).
		Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// Update renames a tag.
func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE tags SET name = $2, updated_at = $3 WHERE id = $1`,
		tag.ID, tag.Name, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("tag with name %s already exists", tag.Name)
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a tag from the catalog.
func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns all tags ordered by name.
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at, updated_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var list []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		list = append(list, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return list, nil
}

var _ TagRepository = (*tagRepository)(nil)
