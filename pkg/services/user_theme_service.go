package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// UserThemeService provides operations for managing user display
// preferences. Each user has at most one.
type UserThemeService interface {
	Create(ctx context.Context, theme *models.UserTheme) (*models.UserTheme, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserTheme, error)
	UpdateByUser(ctx context.Context, userID uuid.UUID, theme string) (*models.UserTheme, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type userThemeService struct {
	themeRepo repositories.UserThemeRepository
	userRepo  repositories.UserRepository
	logger    *zap.Logger
}

// NewUserThemeService creates a new user theme service.
func NewUserThemeService(themeRepo repositories.UserThemeRepository, userRepo repositories.UserRepository, logger *zap.Logger) UserThemeService {
	return &userThemeService{
		themeRepo: themeRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Create persists a theme preference for a user who does not have one yet.
// An empty theme defaults to LIGHT.
func (s *userThemeService) Create(ctx context.Context, theme *models.UserTheme) (*models.UserTheme, error) {
	if theme.Theme != "" && !validEnum(theme.Theme, models.Themes) {
		return nil, apperrors.Validationf("theme must be one of: %s", enumList(models.Themes))
	}
	if _, err := s.userRepo.Get(ctx, theme.UserID); err != nil {
		return nil, err
	}

	if theme.Theme == "" {
		theme.Theme = models.ThemeLight
	}

	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, err
	}

	s.logger.Info("created user theme",
		zap.String("user_id", theme.UserID.String()),
		zap.String("theme", theme.Theme))
	return theme, nil
}

// GetByUser retrieves a user's theme preference.
func (s *userThemeService) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserTheme, error) {
	return s.themeRepo.GetByUser(ctx, userID)
}

// UpdateByUser changes a user's theme.
func (s *userThemeService) UpdateByUser(ctx context.Context, userID uuid.UUID, theme string) (*models.UserTheme, error) {
	if !validEnum(theme, models.Themes) {
		return nil, apperrors.Validationf("theme must be one of: %s", enumList(models.Themes))
	}
	return s.themeRepo.UpdateByUser(ctx, userID, theme)
}

// DeleteByUser removes a user's theme preference.
func (s *userThemeService) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.themeRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("deleted user theme", zap.String("user_id", userID.String()))
	return nil
}

var _ UserThemeService = (*userThemeService)(nil)
