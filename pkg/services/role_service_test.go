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

func newRoleFixture() (RoleService, *mockRoleRepo) {
	roleRepo := newMockRoleRepo()
	return NewRoleService(roleRepo, zap.NewNop()), roleRepo
}

func TestRoleService_Create(t *testing.T) {
	svc, _ := newRoleFixture()

	created, err := svc.Create(context.Background(), &models.Role{Name: "admin", Description: "full access"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "admin", created.Name)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestRoleService_CreateRequiresName(t *testing.T) {
	svc, _ := newRoleFixture()

	_, err := svc.Create(context.Background(), &models.Role{Name: "  "})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
}

func TestRoleService_CreateDuplicateName(t *testing.T) {
	svc, _ := newRoleFixture()

	_, err := svc.Create(context.Background(), &models.Role{Name: "admin"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &models.Role{Name: "admin"})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestRoleService_UpdateTakenName(t *testing.T) {
	svc, roleRepo := newRoleFixture()
	roleRepo.add(&models.Role{Name: "admin"})
	viewer := roleRepo.add(&models.Role{Name: "viewer"})

	_, err := svc.Update(context.Background(), viewer.ID, &models.Role{Name: "admin"})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestRoleService_UpdateMissing(t *testing.T) {
	svc, _ := newRoleFixture()

	_, err := svc.Update(context.Background(), uuid.New(), &models.Role{Name: "admin"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRoleService_DeleteMissing(t *testing.T) {
	svc, _ := newRoleFixture()

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRoleService_List(t *testing.T) {
	svc, roleRepo := newRoleFixture()
	roleRepo.add(&models.Role{Name: "admin"})
	roleRepo.add(&models.Role{Name: "viewer"})

	page, err := svc.List(context.Background(), pagination.Request{Size: 20, Sort: "created_at"})
	require.NoError(t, err)

	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(2), page.TotalElements)
}
