package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ideahub-inc/ideahub-engine/pkg/database"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
)

// VaultSettingsRepository defines the interface for the singleton vault
// settings row. Get creates the row with defaults when it does not exist
// yet, so every operation after the first read has a row to update.
type VaultSettingsRepository interface {
	Get(ctx context.Context) (*models.VaultSettings, error)
	Update(ctx context.Context, s *models.VaultSettings) error
	UpdateEncryption(ctx context.Context, encryption string) (*models.VaultSettings, error)
	UpdateBackup(ctx context.Context, backup string) (*models.VaultSettings, error)
}

type vaultSettingsRepository struct {
	db *database.DB
}

// NewVaultSettingsRepository creates a new vault-settings repository.
func NewVaultSettingsRepository(db *database.DB) VaultSettingsRepository {
	return &vaultSettingsRepository{db: db}
}

// Get returns the settings row, inserting the defaults on first read.
func (r *vaultSettingsRepository) Get(ctx context.Context) (*models.VaultSettings, error) {
	query := `
		INSERT INTO vault_settings (id, encryption, backup, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET id = vault_settings.id
		RETURNING encryption, backup, updated_at`

	var s models.VaultSettings
	err := r.db.QueryRow(ctx, query,
		models.VaultEncryptionEnabled, models.VaultBackupActive, time.Now()).
		Scan(&s.Encryption, &s.Backup, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault settings: %w", err)
	}
	return &s, nil
}

// Update overwrites both settings.
func (r *vaultSettingsRepository) Update(ctx context.Context, s *models.VaultSettings) error {
	s.UpdatedAt = time.Now()

	query := `
		INSERT INTO vault_settings (id, encryption, backup, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET encryption = $1, backup = $2, updated_at = $3`

	if _, err := r.db.Exec(ctx, query, s.Encryption, s.Backup, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update vault settings: %w", err)
	}
	return nil
}

// UpdateEncryption changes only the encryption setting.
func (r *vaultSettingsRepository) UpdateEncryption(ctx context.Context, encryption string) (*models.VaultSettings, error) {
	return r.patch(ctx, `UPDATE vault_settings SET encryption = $1, updated_at = $2 WHERE id = 1
		RETURNING encryption, backup, updated_at`, encryption)
}

// UpdateBackup changes only the backup setting.
func (r *vaultSettingsRepository) UpdateBackup(ctx context.Context, backup string) (*models.VaultSettings, error) {
	return r.patch(ctx, `UPDATE vault_settings SET backup = $1, updated_at = $2 WHERE id = 1
		RETURNING encryption, backup, updated_at`, backup)
}

func (r *vaultSettingsRepository) patch(ctx context.Context, query, value string) (*models.VaultSettings, error) {
	var s models.VaultSettings
	err := r.db.QueryRow(ctx, query, value, time.Now()).
		Scan(&s.Encryption, &s.Backup, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		// Row not created yet; seed it, then retry once.
		if _, gerr := r.Get(ctx); gerr != nil {
			return nil, gerr
		}
		err = r.db.QueryRow(ctx, query, value, time.Now()).
			Scan(&s.Encryption, &s.Backup, &s.UpdatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch vault settings: %w", err)
	}
	return &s, nil
}

var _ VaultSettingsRepository = (*vaultSettingsRepository)(nil)
