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
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
)

func newDeploymentFixture() (DeploymentService, *models.Employee) {
	deploymentRepo := newMockDeploymentRepo()
	employeeRepo := newMockEmployeeRepo()
	owner := employeeRepo.add(&models.Employee{Email: "ops@example.com"})
	return NewDeploymentService(deploymentRepo, employeeRepo, zap.NewNop()), owner
}

func TestDeploymentService_CreateDefaults(t *testing.T) {
	svc, owner := newDeploymentFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.Deployment{Name: "api"})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, created.EmployeeID)
	assert.Equal(t, models.DeploymentStatusPending, created.Status)
	assert.Equal(t, models.DeploymentHealthUnknown, created.Health)
}

func TestDeploymentService_CreateUnknownEmployee(t *testing.T) {
	svc, _ := newDeploymentFixture()

	_, err := svc.Create(context.Background(), uuid.New(), &models.Deployment{Name: "api"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeploymentService_CreateValidatesProgress(t *testing.T) {
	svc, owner := newDeploymentFixture()

	for _, progress := range []string{"", "0", "42", "100"} {
		_, err := svc.Create(context.Background(), owner.ID, &models.Deployment{
			Name:     "api-" + progress,
			Progress: progress,
		})
		require.NoError(t, err, "progress %q", progress)
	}

	for _, progress := range []string{"1000", "5%", "-1", "abc"} {
		_, err := svc.Create(context.Background(), owner.ID, &models.Deployment{
			Name:     "api",
			Progress: progress,
		})
		require.ErrorIs(t, err, apperrors.ErrValidation, "progress %q", progress)
	}
}

func TestDeploymentService_GetScopedToOwner(t *testing.T) {
	svc, owner := newDeploymentFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.Deployment{Name: "api"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), created.ID, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeploymentService_PatchPartial(t *testing.T) {
	svc, owner := newDeploymentFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.Deployment{
		Name:        "api",
		Environment: "staging",
	})
	require.NoError(t, err)

	status := models.DeploymentStatusDeployed
	patched, err := svc.Patch(context.Background(), created.ID, owner.ID, &models.DeploymentUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.DeploymentStatusDeployed, patched.Status)
	assert.Equal(t, "staging", patched.Environment)
}

func TestDeploymentService_ListByStatusValidatesEnum(t *testing.T) {
	svc, _ := newDeploymentFixture()

	_, err := svc.ListByStatus(context.Background(), "SHIPPED", pagination.Request{Size: 20})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeploymentService_ListByEnvironmentUnscoped(t *testing.T) {
	svc, owner := newDeploymentFixture()

	_, err := svc.Create(context.Background(), owner.ID, &models.Deployment{Name: "api", Environment: "production"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner.ID, &models.Deployment{Name: "worker", Environment: "staging"})
	require.NoError(t, err)

	page, err := svc.ListByEnvironment(context.Background(), "production", pagination.Request{Size: 20})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "api", page.Content[0].Name)
}
