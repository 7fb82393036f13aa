package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
)

func newSubscriptionFixture() (SubscriptionService, *models.User) {
	subscriptionRepo := newMockSubscriptionRepo()
	userRepo := newMockUserRepo()
	user := userRepo.add(&models.User{Username: "ada", Email: "ada@example.com"})
	return NewSubscriptionService(subscriptionRepo, userRepo, zap.NewNop()), user
}

func TestSubscriptionService_CreateDefaults(t *testing.T) {
	svc, user := newSubscriptionFixture()

	created, err := svc.Create(context.Background(), &models.Subscription{UserID: user.ID})
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionPlanFree, created.Plan)
	assert.Equal(t, models.SubscriptionStatusInactive, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestSubscriptionService_CreateSecondForUserConflicts(t *testing.T) {
	svc, user := newSubscriptionFixture()

	_, err := svc.Create(context.Background(), &models.Subscription{UserID: user.ID})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &models.Subscription{UserID: user.ID})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "already has a subscription")
}

func TestSubscriptionService_CreateUnknownUser(t *testing.T) {
	svc, _ := newSubscriptionFixture()

	_, err := svc.Create(context.Background(), &models.Subscription{UserID: uuid.New()})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubscriptionService_CreateRejectsBadPlan(t *testing.T) {
	svc, user := newSubscriptionFixture()

	_, err := svc.Create(context.Background(), &models.Subscription{UserID: user.ID, Plan: "GOLD"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "plan must be one of: FREE, PREMIUM")
}

func TestSubscriptionService_UpdateStatus(t *testing.T) {
	svc, user := newSubscriptionFixture()

	created, err := svc.Create(context.Background(), &models.Subscription{UserID: user.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, models.SubscriptionStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "UNPAID")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSubscriptionService_GetByUser(t *testing.T) {
	svc, user := newSubscriptionFixture()

	created, err := svc.Create(context.Background(), &models.Subscription{UserID: user.ID, Plan: models.SubscriptionPlanPremium})
	require.NoError(t, err)

	got, err := svc.GetByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.SubscriptionPlanPremium, got.Plan)
}
