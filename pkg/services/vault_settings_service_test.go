package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
)

func newVaultFixture() VaultSettingsService {
	return NewVaultSettingsService(newMockVaultRepo(), zap.NewNop())
}

func TestVaultSettingsService_GetReturnsDefaults(t *testing.T) {
	svc := newVaultFixture()

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.VaultEncryptionEnabled, settings.Encryption)
	assert.Equal(t, models.VaultBackupActive, settings.Backup)
}

func TestVaultSettingsService_Update(t *testing.T) {
	svc := newVaultFixture()

	updated, err := svc.Update(context.Background(), &models.VaultSettings{
		Encryption: models.VaultEncryptionDisabled,
		Backup:     models.VaultBackupInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VaultEncryptionDisabled, updated.Encryption)
	assert.Equal(t, models.VaultBackupInactive, updated.Backup)
}

func TestVaultSettingsService_UpdateRejectsBadEnums(t *testing.T) {
	svc := newVaultFixture()

	_, err := svc.Update(context.Background(), &models.VaultSettings{
		Encryption: "ON",
		Backup:     models.VaultBackupActive,
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateEncryption(context.Background(), "ON")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateBackup(context.Background(), "OFF")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestVaultSettingsService_PartialUpdates(t *testing.T) {
	svc := newVaultFixture()

	settings, err := svc.UpdateEncryption(context.Background(), models.VaultEncryptionDisabled)
	require.NoError(t, err)
	assert.Equal(t, models.VaultEncryptionDisabled, settings.Encryption)
	assert.Equal(t, models.VaultBackupActive, settings.Backup)

	settings, err = svc.UpdateBackup(context.Background(), models.VaultBackupInactive)
	require.NoError(t, err)
	assert.Equal(t, models.VaultEncryptionDisabled, settings.Encryption)
	assert.Equal(t, models.VaultBackupInactive, settings.Backup)
}
