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

// UserThemeRepository defines the interface for user theme data access.
// The user_id unique index enforces one theme row per user.
type UserThemeRepository interface {
	Create(ctx context.Context, theme *models.UserTheme) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserTheme, error)
	UpdateByUser(ctx context.Context, userID uuid.UUID, theme string) (*models.UserTheme, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type userThemeRepository struct {
	db *database.DB
}

// NewUserThemeRepository creates a new user theme repository.
func NewUserThemeRepository(db *database.DB) UserThemeRepository {
	return &userThemeRepository{db: db}
}

const userThemeColumns = `id, user_id, theme, created_at, updated_at`

func scanUserTheme(row pgx.Row) (*models.UserTheme, error) {
	var ut models.UserTheme
	if err := row.Scan(&ut.ID, &ut.UserID, &ut.Theme, &ut.CreatedAt, &ut.UpdatedAt); err != nil {
		return nil, err
	}
	return &ut, nil
}

// Create inserts a theme preference for a user who does not have one yet.
func (r *userThemeRepository) Create(ctx context.Context, theme *models.UserTheme) error {
	if theme.ID == uuid.Nil {
		theme.ID = uuid.New()
	}
	now := time.Now()
	theme.CreatedAt = now
	theme.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO user_themes (id, user_id, theme, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		theme.ID, theme.UserID, theme.Theme, theme.CreatedAt, theme.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("user %s already has a theme preference", theme.UserID)
		}
		return fmt.Errorf("failed to create user theme: %w", err)
	}
	return nil
}

// GetByUser retrieves a user's theme preference.
func (r *userThemeRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserTheme, error) {
	ut, err := scanUserTheme(r.db.QueryRow(ctx,
		`SELECT `+userThemeColumns+` FROM user_themes WHERE user_id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user theme: %w", err)
	}
	return ut, nil
}

// UpdateByUser changes a user's theme and returns the updated row.
func (r *userThemeRepository) UpdateByUser(ctx context.Context, userID uuid.UUID, theme string) (*models.UserTheme, error) {
	ut, err := scanUserTheme(r.db.QueryRow(ctx,
		`UPDATE user_themes SET theme = $2, updated_at = $3 WHERE user_id = $1 RETURNING `+userThemeColumns,
		userID, theme, time.Now()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user theme: %w", err)
	}
	return ut, nil
}

// DeleteByUser removes a user's theme preference.
func (r *userThemeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM user_themes WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user theme: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ UserThemeRepository = (*userThemeRepository)(nil)
