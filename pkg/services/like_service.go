package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
)

// LikeService provides operations for liking and unliking ideas. The idea's
// upvote counter moves atomically with the like rows.
type LikeService interface {
	Like(ctx context.Context, ideaID, userID uuid.UUID) (*models.Like, error)
	Unlike(ctx context.Context, ideaID, userID uuid.UUID) error
	HasLiked(ctx context.Context, ideaID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, ideaID uuid.UUID) (int64, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID, page pagination.Request) (models.Page[models.Like], error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Request) (models.Page[models.Like], error)
}

type likeService struct {
	likeRepo repositories.LikeRepository
	ideaRepo repositories.IdeaRepository
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewLikeService creates a new like service.
func NewLikeService(likeRepo repositories.LikeRepository, ideaRepo repositories.IdeaRepository, userRepo repositories.UserRepository, logger *zap.Logger) LikeService {
	return &likeService{
		likeRepo: likeRepo,
		ideaRepo: ideaRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Like records a user's upvote of an idea. Both must exist, and a repeated
// like is a conflict.
func (s *likeService) Like(ctx context.Context, ideaID, userID uuid.UUID) (*models.Like, error) {
	if _, err := s.ideaRepo.Get(ctx, ideaID, nil); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, ideaID, userID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, apperrors.Duplicatef("user %s already liked idea %s", userID, ideaID)
	}

	like := &models.Like{UserID: userID, IdeaID: ideaID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}

	s.logger.Info("liked idea",
		zap.String("idea_id", ideaID.String()),
		zap.String("user_id", userID.String()))
	return like, nil
}

// Unlike removes a user's upvote.
func (s *likeService) Unlike(ctx context.Context, ideaID, userID uuid.UUID) error {
	if err := s.likeRepo.Delete(ctx, ideaID, userID); err != nil {
		return err
	}
	s.logger.Info("unliked idea",
		zap.String("idea_id", ideaID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// HasLiked reports whether the user has liked the idea.
func (s *likeService) HasLiked(ctx context.Context, ideaID, userID uuid.UUID) (bool, error) {
	return s.likeRepo.Exists(ctx, ideaID, userID)
}

// Count returns the number of likes on an idea.
func (s *likeService) Count(ctx context.Context, ideaID uuid.UUID) (int64, error) {
	return s.likeRepo.CountByIdea(ctx, ideaID)
}

// ListByIdea returns a page of likes on one idea.
func (s *likeService) ListByIdea(ctx context.Context, ideaID uuid.UUID, page pagination.Request) (models.Page[models.Like], error) {
	list, total, err := s.likeRepo.ListByIdea(ctx, ideaID, page)
	if err != nil {
		return models.Page[models.Like]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

// ListByUser returns a page of one user's likes.
func (s *likeService) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Request) (models.Page[models.Like], error) {
	list, total, err := s.likeRepo.ListByUser(ctx, userID, page)
	if err != nil {
		return models.Page[models.Like]{}, err
	}
	return models.NewPage(list, total, page.Page, page.Size), nil
}

var _ LikeService = (*likeService)(nil)
