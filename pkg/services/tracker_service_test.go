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

func newTrackerFixture() (TrackerService, *mockTrackerRepo, *models.Employee) {
	trackerRepo := newMockTrackerRepo()
	employeeRepo := newMockEmployeeRepo()
	owner := employeeRepo.add(&models.Employee{Email: "dba@example.com"})
	return NewTrackerService(trackerRepo, employeeRepo, zap.NewNop()), trackerRepo, owner
}

func TestTrackerService_CreateDefaults(t *testing.T) {
	svc, _, owner := newTrackerFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, owner.ID, created.EmployeeID)
	assert.Equal(t, models.TrackerStatusCreated, created.Status)
	assert.Equal(t, "[]", created.MigrationsJSON)
	assert.NotNil(t, created.LastModified)
}

func TestTrackerService_CreateDuplicateName(t *testing.T) {
	svc, _, owner := newTrackerFixture()

	_, err := svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestTrackerService_CreateUnknownEmployee(t *testing.T) {
	svc, _, _ := newTrackerFixture()

	_, err := svc.Create(context.Background(), uuid.New(), &models.DatabaseTracker{Name: "orders-db"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTrackerService_GetScopedToOwner(t *testing.T) {
	svc, _, owner := newTrackerFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), created.ID, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTrackerService_UpdateStatus(t *testing.T) {
	svc, _, owner := newTrackerFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, owner.ID, models.TrackerStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.TrackerStatusApproved, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), created.ID, owner.ID, "ARCHIVED")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "status must be one of: approved, pending, created, failed")
}

func TestTrackerService_UpdateChecksChangedNameOnly(t *testing.T) {
	svc, _, owner := newTrackerFixture()

	created, err := svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "billing-db"})
	require.NoError(t, err)

	// Keeping its own name is fine.
	updated, err := svc.Update(context.Background(), created.ID, owner.ID, &models.DatabaseTracker{
		Name:    "orders-db",
		Version: "15.3",
	})
	require.NoError(t, err)
	assert.Equal(t, "15.3", updated.Version)

	// Renaming onto an existing tracker is a conflict.
	_, err = svc.Update(context.Background(), created.ID, owner.ID, &models.DatabaseTracker{Name: "billing-db"})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestTrackerService_ListScopedToOwner(t *testing.T) {
	svc, trackerRepo, owner := newTrackerFixture()

	_, err := svc.Create(context.Background(), owner.ID, &models.DatabaseTracker{Name: "orders-db"})
	require.NoError(t, err)
	trackerRepo.trackers[99] = &models.DatabaseTracker{ID: 99, Name: "foreign-db", EmployeeID: uuid.New()}

	page, err := svc.List(context.Background(), owner.ID, pagination.Request{Size: 20})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "orders-db", page.Content[0].Name)
}
