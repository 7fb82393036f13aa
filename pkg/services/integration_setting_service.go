package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// IntegrationSettingService provides operations for per-user integration
// settings. A user has at most one setting per integration type.
type IntegrationSettingService interface {
	Create(ctx context.Context, setting *models.IntegrationSetting) (*models.IntegrationSetting, error)
	Get(ctx context.Context, id uuid.UUID) (*models.IntegrationSetting, error)
	GetByUserAndType(ctx context.Context, userID uuid.UUID, integrationType string) (*models.IntegrationSetting, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.IntegrationSetting, error)
	Update(ctx context.Context, id uuid.UUID, setting *models.IntegrationSetting) (*models.IntegrationSetting, error)
	UpdateConnection(ctx context.Context, id uuid.UUID, connected bool) (*models.IntegrationSetting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type integrationSettingService struct {
	settingRepo repositories.IntegrationSettingRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewIntegrationSettingService creates a new integration-setting service.
func NewIntegrationSettingService(settingRepo repositories.IntegrationSettingRepository, userRepo repositories.UserRepository, logger *zap.Logger) IntegrationSettingService {
	return &integrationSettingService{
		settingRepo: settingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func normalizeIntegrationType(t string) (string, error) {
	t = strings.ToUpper(strings.TrimSpace(t))
	if !validEnum(t, models.IntegrationTypes) {
		return "", apperrors.Validationf("type must be one of: %s", enumList(models.IntegrationTypes))
	}
	return t, nil
}

// Create persists a new integration setting for a user.
func (s *integrationSettingService) Create(ctx context.Context, setting *models.IntegrationSetting) (*models.IntegrationSetting, error) {
	t, err := normalizeIntegrationType(setting.Type)
	if err != nil {
		return nil, err
	}
	setting.Type = t

	if _, err := s.userRepo.Get(ctx, setting.UserID); err != nil {
		return nil, err
	}

	if err := s.settingRepo.Create(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info("created integration setting",
		zap.String("setting_id", setting.ID.String()),
		zap.String("user_id", setting.UserID.String()),
		zap.String("type", setting.Type))
	return setting, nil
}

// Get retrieves an integration setting by ID.
func (s *integrationSettingService) Get(ctx context.Context, id uuid.UUID) (*models.IntegrationSetting, error) {
	return s.settingRepo.Get(ctx, id)
}

// GetByUserAndType retrieves a user's setting for one integration type.
func (s *integrationSettingService) GetByUserAndType(ctx context.Context, userID uuid.UUID, integrationType string) (*models.IntegrationSetting, error) {
	t, err := normalizeIntegrationType(integrationType)
	if err != nil {
		return nil, err
	}
	return s.settingRepo.GetByUserAndType(ctx, userID, t)
}

// ListByUser returns all of a user's integration settings.
func (s *integrationSettingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.IntegrationSetting, error) {
	return s.settingRepo.ListByUser(ctx, userID)
}

// Update replaces all mutable fields of an integration setting.
func (s *integrationSettingService) Update(ctx context.Context, id uuid.UUID, setting *models.IntegrationSetting) (*models.IntegrationSetting, error) {
	t, err := normalizeIntegrationType(setting.Type)
	if err != nil {
		return nil, err
	}

	existing, err := s.settingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Type = t
	existing.Connected = setting.Connected
	existing.Config = setting.Config

	if err := s.settingRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdateConnection flips only the connected flag.
func (s *integrationSettingService) UpdateConnection(ctx context.Context, id uuid.UUID, connected bool) (*models.IntegrationSetting, error) {
	return s.settingRepo.UpdateConnection(ctx, id, connected)
}

// Delete removes an integration setting.
func (s *integrationSettingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.settingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted integration setting", zap.String("setting_id", id.String()))
	return nil
}

var _ IntegrationSettingService = (*integrationSettingService)(nil)
