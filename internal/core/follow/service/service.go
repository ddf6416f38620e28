package followapp

import (
	"context"
	"yatube/internal/common"
	"yatube/internal/config"
	followEntity "yatube/internal/core/follow"
	followPort "yatube/internal/ports/follow"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowService struct {
	FollowRepository followPort.FollowRepository
	UserRepository   userPort.UserRepository
}

func NewFollowService(repo followPort.FollowRepository, userRepo userPort.UserRepository) *FollowService {
	return &FollowService{
		FollowRepository: repo,
		UserRepository:   userRepo,
	}
}

// FollowUser subscribes followerID to the author with the given username.
// Following twice keeps a single edge.
func (s *FollowService) FollowUser(ctx context.Context, followerID, username string) error {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID.String() == followerID {
		config.Logger.Warn("⚠️ Cannot follow yourself", zap.String("userID", followerID))
		return common.ErrSelfFollow
	}

	f := &followEntity.Follow{
		UserID:   uuid.FromStringOrNil(followerID),
		AuthorID: author.ID,
	}
	created, err := s.FollowRepository.Create(ctx, f)
	if err != nil {
		return err
	}
	if !created {
		config.Logger.Debug("already following", zap.String("userID", followerID), zap.String("author", username))
	}
	return nil
}

// UnfollowUser removes the edge if there is one.
func (s *FollowService) UnfollowUser(ctx context.Context, followerID, username string) error {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	_, err = s.FollowRepository.Delete(ctx, followerID, author.ID.String())
	return err
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	if followerID == "" || followerID == authorID {
		return false, nil
	}
	return s.FollowRepository.Exists(ctx, followerID, authorID)
}

func (s *FollowService) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	return s.FollowRepository.CountFollowers(ctx, authorID)
}
