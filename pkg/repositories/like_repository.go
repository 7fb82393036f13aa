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

// LikeRepository defines the interface for like data access. Create and
// Delete run the like row change and the idea upvote counter change in one
// transaction, so the counter always equals the number of like rows.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, ideaID, userID uuid.UUID) error
	Exists(ctx context.Context, ideaID, userID uuid.UUID) (bool, error)
	CountByIdea(ctx context.Context, ideaID uuid.UUID) (int64, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID, page pagination.Request) ([]models.Like, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Request) ([]models.Like, int64, error)
}

type likeRepository struct {
	db *database.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *database.DB) LikeRepository {
	return &likeRepository{db: db}
}

const likeColumns = `id, user_id, idea_id, employee_id, created_at`

func scanLike(row pgx.Row) (*models.Like, error) {
	var like models.Like
	err := row.Scan(
		&like.ID,
		&like.UserID,
		&like.IdeaID,
		&like.EmployeeID,
		&like.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Create inserts a like and increments the idea's upvote counter in the same
// transaction. A second like of the same idea by the same user is a
// duplicate.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	like.CreatedAt = time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin like transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO likes (id, user_id, idea_id, employee_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		like.ID, like.UserID, like.IdeaID, like.EmployeeID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("user %s already liked idea %s", like.UserID, like.IdeaID)
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE ideas SET upvotes = upvotes + 1, updated_at = $2 WHERE id = $1`,
		like.IdeaID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment upvotes: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit like transaction: %w", err)
	}
	return nil
}

// Delete removes a like and decrements the idea's upvote counter in the same
// transaction.
func (r *likeRepository) Delete(ctx context.Context, ideaID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unlike transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`DELETE FROM likes WHERE idea_id = $1 AND user_id = $2`, ideaID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE ideas SET upvotes = GREATEST(upvotes - 1, 0), updated_at = $2 WHERE id = $1`,
		ideaID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement upvotes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit unlike transaction: %w", err)
	}
	return nil
}

// Exists reports whether a user has liked an idea.
func (r *likeRepository) Exists(ctx context.Context, ideaID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE idea_id = $1 AND user_id = $2)`,
		ideaID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// CountByIdea returns the number of likes on an idea.
func (r *likeRepository) CountByIdea(ctx context.Context, ideaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE idea_id = $1`, ideaID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListByIdea returns a page of likes on an idea.
func (r *likeRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID, page pagination.Request) ([]models.Like, int64, error) {
	return r.listWhere(ctx, ` WHERE idea_id = $1`, []any{ideaID}, page)
}

// ListByUser returns a page of likes made by a user.
func (r *likeRepository) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Request) ([]models.Like, int64, error) {
	return r.listWhere(ctx, ` WHERE user_id = $1`, []any{userID}, page)
}

func (r *likeRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.Like, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count likes: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+likeColumns+` FROM likes%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	var list []models.Like
	for rows.Next() {
		like, err := scanLike(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan like: %w", err)
		}
		list = append(list, *like)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read likes: %w", err)
	}
	return list, total, nil
}

var _ LikeRepository = (*likeRepository)(nil)
