package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// UserInput carries the create/update payload for users. Password is
// write-only: it is hashed before storage and never echoed back.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// UserService provides operations for managing user accounts.
type UserService interface {
	Create(ctx context.Context, in *UserInput) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, in *UserInput) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) (models.Page[models.User], error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create persists a new user. Username and email must be unused and the
// password is required.
func (s *userService) Create(ctx context.Context, in *UserInput) (*models.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, apperrors.Validationf("email is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, apperrors.Validationf("password is required")
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Duplicatef("username %s is already taken", in.Username)
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Duplicatef("email %s is already registered", in.Email)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("created user", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// Get retrieves a user by ID.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.Get(ctx, id)
}

// GetByUsername retrieves a user by username.
func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// GetByEmail retrieves a user by email.
func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// UsernameExists reports whether the username is taken.
func (s *userService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.userRepo.ExistsByUsername(ctx, username)
}

// EmailExists reports whether the email is registered.
func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.userRepo.ExistsByEmail(ctx, email)
}

// Update replaces the user's fields. Uniqueness is only checked for a
// changed username or email, and the password is only rehashed when a
// non-blank one was sent.
func (s *userService) Update(ctx context.Context, id uuid.UUID, in *UserInput) (*models.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, apperrors.Validationf("email is required")
	}

	existing, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != existing.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Duplicatef("username %s is already taken", in.Username)
		}
	}
	if in.Email != existing.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Duplicatef("email %s is already registered", in.Email)
		}
	}

	existing.Username = in.Username
	existing.Email = in.Email
	existing.FullName = in.FullName
	if strings.TrimSpace(in.Password) != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a user and, via CASCADE, their likes, subscription and
// integration settings.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted user", zap.String("user_id", id.String()))
	return nil
}

// List returns a page of all users.
func (s *userService) List(ctx context.Context, page pagination.Request) (models.Page[models.User], error) {
	list, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ UserService = (*userService)(nil)
