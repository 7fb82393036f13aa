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

func newEnvironmentFixture() (EnvironmentService, *models.Employee) {
	environmentRepo := newMockEnvironmentRepo()
	employeeRepo := newMockEmployeeRepo()
	owner := employeeRepo.add(&models.Employee{Email: "ops@example.com"})
	return NewEnvironmentService(environmentRepo, employeeRepo, zap.NewNop()), owner
}

func TestEnvironmentService_CreateDefaults(t *testing.T) {
	svc, owner := newEnvironmentFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.Environment{Name: "staging"})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, created.EmployeeID)
	assert.Equal(t, models.EnvironmentStatusActive, created.Status)
	assert.Equal(t, "0", created.DeploymentsCount)
}

func TestEnvironmentService_CreateDuplicateName(t *testing.T) {
	svc, owner := newEnvironmentFixture()

	_, err := svc.Create(context.Background(), owner.ID, &models.Environment{Name: "staging"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner.ID, &models.Environment{Name: "staging"})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestEnvironmentService_CreateUnknownEmployee(t *testing.T) {
	svc, _ := newEnvironmentFixture()

	_, err := svc.Create(context.Background(), uuid.New(), &models.Environment{Name: "staging"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEnvironmentService_CreateRejectsBadStatus(t *testing.T) {
	svc, owner := newEnvironmentFixture()

	_, err := svc.Create(context.Background(), owner.ID, &models.Environment{
		Name:   "staging",
		Status: "DOWN",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "status must be one of: ACTIVE, MAINTENANCE")
}

func TestEnvironmentService_GetByName(t *testing.T) {
	svc, owner := newEnvironmentFixture()

	_, err := svc.Create(context.Background(), owner.ID, &models.Environment{Name: "staging"})
	require.NoError(t, err)

	got, err := svc.GetByName(context.Background(), "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", got.Name)

	_, err = svc.GetByName(context.Background(), "production")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
