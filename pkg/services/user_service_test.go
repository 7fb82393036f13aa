package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
)

func newUserFixture() (UserService, *mockUserRepo) {
	repo := newMockUserRepo()
	return NewUserService(repo, zap.NewNop()), repo
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	svc, _ := newUserFixture()

	created, err := svc.Create(context.Background(), &UserInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "s3cret",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
}

func TestUserService_CreateRequiredFields(t *testing.T) {
	svc, _ := newUserFixture()

	cases := map[string]*UserInput{
		"username is required": {Email: "a@b.c", Password: "x"},
		"email is required":    {Username: "ada", Password: "x"},
		"password is required": {Username: "ada", Email: "a@b.c"},
	}
	for msg, in := range cases {
		_, err := svc.Create(context.Background(), in)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), msg)
	}
}

func TestUserService_CreateDuplicateUsername(t *testing.T) {
	svc, repo := newUserFixture()
	repo.add(&models.User{Username: "ada", Email: "ada@example.com"})

	_, err := svc.Create(context.Background(), &UserInput{
		Username: "ada",
		Email:    "other@example.com",
		Password: "x",
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "username ada is already taken")
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	svc, repo := newUserFixture()
	repo.add(&models.User{Username: "ada", Email: "ada@example.com"})

	_, err := svc.Create(context.Background(), &UserInput{
		Username: "grace",
		Email:    "ada@example.com",
		Password: "x",
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "email ada@example.com is already registered")
}

func TestUserService_UpdateBlankPasswordKeepsHash(t *testing.T) {
	svc, repo := newUserFixture()
	user := repo.add(&models.User{
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$existinghash",
	})

	updated, err := svc.Update(context.Background(), user.ID, &UserInput{
		Username: "ada",
		Email:    "ada@example.com",
		FullName: "Ada L.",
	})
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$existinghash", updated.PasswordHash)
	assert.Equal(t, "Ada L.", updated.FullName)
}

func TestUserService_UpdateRehashesNewPassword(t *testing.T) {
	svc, repo := newUserFixture()
	user := repo.add(&models.User{
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$existinghash",
	})

	updated, err := svc.Update(context.Background(), user.ID, &UserInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "newpass",
	})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass")))
}

func TestUserService_UpdateTakenUsername(t *testing.T) {
	svc, repo := newUserFixture()
	ada := repo.add(&models.User{Username: "ada", Email: "ada@example.com"})
	repo.add(&models.User{Username: "grace", Email: "grace@example.com"})

	_, err := svc.Update(context.Background(), ada.ID, &UserInput{
		Username: "grace",
		Email:    "ada@example.com",
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestUserService_UsernameAndEmailExists(t *testing.T) {
	svc, repo := newUserFixture()
	repo.add(&models.User{Username: "ada", Email: "ada@example.com"})

	taken, err := svc.UsernameExists(context.Background(), "ada")
	require.NoError(t, err)
	assert.True(t, taken)

	registered, err := svc.EmailExists(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, registered)
}
