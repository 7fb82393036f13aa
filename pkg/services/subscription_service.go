package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// SubscriptionService provides operations for managing subscriptions. Each
// user has at most one.
type SubscriptionService interface {
	Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	Update(ctx context.Context, id uuid.UUID, sub *models.Subscription) (*models.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Subscription, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string) (*models.Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository, userRepo repositories.UserRepository, logger *zap.Logger) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (s *subscriptionService) validate(sub *models.Subscription) error {
	if sub.Plan != "" && !validEnum(sub.Plan, models.SubscriptionPlans) {
		return apperrors.Validationf("plan must be one of: %s", enumList(models.SubscriptionPlans))
	}
	if sub.Status != "" && !validEnum(sub.Status, models.SubscriptionStatuses) {
		return apperrors.Validationf("status must be one of: %s", enumList(models.SubscriptionStatuses))
	}
	return nil
}

// Create persists a subscription for a user who does not have one yet.
func (s *subscriptionService) Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	if err := s.validate(sub); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.Get(ctx, sub.UserID); err != nil {
		return nil, err
	}

	if sub.Plan == "" {
		sub.Plan = models.SubscriptionPlanFree
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionStatusInactive
	}

	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("created subscription",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("user_id", sub.UserID.String()),
		zap.String("plan", sub.Plan))
	return sub, nil
}

// Get retrieves a subscription by ID.
func (s *subscriptionService) Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	return s.subscriptionRepo.Get(ctx, id)
}

// GetByUser retrieves a user's subscription.
func (s *subscriptionService) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	return s.subscriptionRepo.GetByUser(ctx, userID)
}

// Update replaces all mutable fields of a subscription.
func (s *subscriptionService) Update(ctx context.Context, id uuid.UUID, sub *models.Subscription) (*models.Subscription, error) {
	if err := s.validate(sub); err != nil {
		return nil, err
	}

	existing, err := s.subscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.Plan != "" {
		existing.Plan = sub.Plan
	}
	if sub.Status != "" {
		existing.Status = sub.Status
	}
	existing.StartedAt = sub.StartedAt
	existing.ExpiresAt = sub.ExpiresAt

	if err := s.subscriptionRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdateStatus changes only the status.
func (s *subscriptionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Subscription, error) {
	if !validEnum(status, models.SubscriptionStatuses) {
		return nil, apperrors.Validationf("status must be one of: %s", enumList(models.SubscriptionStatuses))
	}
	return s.subscriptionRepo.UpdateStatus(ctx, id, status)
}

// UpdatePlan changes only the plan.
func (s *subscriptionService) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) (*models.Subscription, error) {
	if !validEnum(plan, models.SubscriptionPlans) {
		return nil, apperrors.Validationf("plan must be one of: %s", enumList(models.SubscriptionPlans))
	}
	return s.subscriptionRepo.UpdatePlan(ctx, id, plan)
}

// Delete removes a subscription.
func (s *subscriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.subscriptionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted subscription", zap.String("subscription_id", id.String()))
	return nil
}

var _ SubscriptionService = (*subscriptionService)(nil)
