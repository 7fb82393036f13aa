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

// IntegrationSettingRepository defines the interface for integration-setting
// data access. The (user_id, type) unique index enforces one setting per
// service per user.
type IntegrationSettingRepository interface {
	Create(ctx context.Context, s *models.IntegrationSetting) error
	Get(ctx context.Context, id uuid.UUID) (*models.IntegrationSetting, error)
	GetByUserAndType(ctx context.Context, userID uuid.UUID, integrationType string) (*models.IntegrationSetting, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.IntegrationSetting, error)
	Update(ctx context.Context, s *models.IntegrationSetting) error
	UpdateConnection(ctx context.Context, id uuid.UUID, connected bool) (*models.IntegrationSetting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type integrationSettingRepository struct {
	db *database.DB
}

// NewIntegrationSettingRepository creates a new integration-setting repository.
func NewIntegrationSettingRepository(db *database.DB) IntegrationSettingRepository {
	return &integrationSettingRepository{db: db}
}

const integrationColumns = `id, user_id, type, connected, config, employee_id, created_at, updated_at`

func scanIntegrationSetting(row pgx.Row) (*models.IntegrationSetting, error) {
	var s models.IntegrationSetting
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Type,
		&s.Connected,
		&s.Config,
		&s.EmployeeID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new integration setting.
func (r *integrationSettingRepository) Create(ctx context.Context, s *models.IntegrationSetting) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO integration_settings (id, user_id, type, connected, config, employee_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.UserID, s.Type, s.Connected, s.Config, s.EmployeeID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("user %s already has a %s integration", s.UserID, s.Type)
		}
		return fmt.Errorf("failed to create integration setting: %w", err)
	}
	return nil
}

// Get retrieves an integration setting by ID.
func (r *integrationSettingRepository) Get(ctx context.Context, id uuid.UUID) (*models.IntegrationSetting, error) {
	s, err := scanIntegrationSetting(r.db.QueryRow(ctx,
		`SELECT `+integrationColumns+` FROM integration_settings WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get integration setting: %w", err)
	}
	return s, nil
}

// GetByUserAndType retrieves a user's setting for one integration type.
func (r *integrationSettingRepository) GetByUserAndType(ctx context.Context, userID uuid.UUID, integrationType string) (*models.IntegrationSetting, error) {
	s, err := scanIntegrationSetting(r.db.QueryRow(ctx,
		`SELECT `+integrationColumns+` FROM integration_settings WHERE user_id = $1 AND type = $2`,
		userID, integrationType))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get integration setting by user and type: %w", err)
	}
	return s, nil
}

// ListByUser returns all of a user's integration settings.
func (r *integrationSettingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.IntegrationSetting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+integrationColumns+` FROM integration_settings WHERE user_id = $1 ORDER BY type`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list integration settings: %w", err)
	}
	defer rows.Close()

	var list []models.IntegrationSetting
	for rows.Next() {
		s, err := scanIntegrationSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan integration setting: %w", err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read integration settings: %w", err)
	}
	return list, nil
}

// Update overwrites all mutable fields of an integration setting.
func (r *integrationSettingRepository) Update(ctx context.Context, s *models.IntegrationSetting) error {
	s.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE integration_settings
		 SET type = $2, connected = $3, config = $4, employee_id = $5, updated_at = $6
		 WHERE id = $1`,
		s.ID, s.Type, s.Connected, s.Config, s.EmployeeID, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("user %s already has a %s integration", s.UserID, s.Type)
		}
		return fmt.Errorf("failed to update integration setting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateConnection flips only the connected flag and returns the updated row.
func (r *integrationSettingRepository) UpdateConnection(ctx context.Context, id uuid.UUID, connected bool) (*models.IntegrationSetting, error) {
	s, err := scanIntegrationSetting(r.db.QueryRow(ctx,
		`UPDATE integration_settings SET connected = $2, updated_at = $3 WHERE id = $1 RETURNING `+integrationColumns,
		id, connected, time.Now()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update integration connection: %w", err)
	}
	return s, nil
}

// Delete removes an integration setting.
func (r *integrationSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM integration_settings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete integration setting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ IntegrationSettingRepository = (*integrationSettingRepository)(nil)
