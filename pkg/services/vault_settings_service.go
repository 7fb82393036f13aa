package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// VaultSettingsService provides operations on the singleton security
// configuration.
type VaultSettingsService interface {
	Get(ctx context.Context) (*models.VaultSettings, error)
	Update(ctx context.Context, settings *models.VaultSettings) (*models.VaultSettings, error)
	UpdateEncryption(ctx context.Context, encryption string) (*models.VaultSettings, error)
	UpdateBackup(ctx context.Context, backup string) (*models.VaultSettings, error)
}

type vaultSettingsService struct {
	vaultRepo repositories.VaultSettingsRepository
	logger    *zap.Logger
}

// NewVaultSettingsService creates a new vault-settings service.
func NewVaultSettingsService(vaultRepo repositories.VaultSettingsRepository, logger *zap.Logger) VaultSettingsService {
	return &vaultSettingsService{
		vaultRepo: vaultRepo,
		logger:    logger,
	}
}

// Get returns the settings, creating the row with defaults on first read.
func (s *vaultSettingsService) Get(ctx context.Context) (*models.VaultSettings, error) {
	return s.vaultRepo.Get(ctx)
}

// Update overwrites both settings.
func (s *vaultSettingsService) Update(ctx context.Context, settings *models.VaultSettings) (*models.VaultSettings, error) {
	if !validEnum(settings.Encryption, models.VaultEncryptions) {
		return nil, apperrors.Validationf("encryption must be one of: %s", enumList(models.VaultEncryptions))
	}
	if !validEnum(settings.Backup, models.VaultBackups) {
		return nil, apperrors.Validationf("backup must be one of: %s", enumList(models.VaultBackups))
	}

	if err := s.vaultRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	s.logger.Info("updated vault settings",
		zap.String("encryption", settings.Encryption),
		zap.String("backup", settings.Backup))
	return settings, nil
}

// UpdateEncryption changes only the encryption setting.
func (s *vaultSettingsService) UpdateEncryption(ctx context.Context, encryption string) (*models.VaultSettings, error) {
	if !validEnum(encryption, models.VaultEncryptions) {
		return nil, apperrors.Validationf("encryption must be one of: %s", enumList(models.VaultEncryptions))
	}
	return s.vaultRepo.UpdateEncryption(ctx, encryption)
}

// UpdateBackup changes only the backup setting.
func (s *vaultSettingsService) UpdateBackup(ctx context.Context, backup string) (*models.VaultSettings, error) {
	if !validEnum(backup, models.VaultBackups) {
		return nil, apperrors.Validationf("backup must be one of: %s", enumList(models.VaultBackups))
	}
	return s.vaultRepo.UpdateBackup(ctx, backup)
}

var _ VaultSettingsService = (*vaultSettingsService)(nil)
