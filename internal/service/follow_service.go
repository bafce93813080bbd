package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"foodjournal/internal/cache"
	apperrors "foodjournal/internal/errors"
	"foodjournal/internal/repository"
)

// FollowCounts summarizes a user's position in the social graph.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowService handles the directed social relation between users.
type FollowService interface {
	Follow(ctx context.Context, followerID uint, username string) error
	Unfollow(ctx context.Context, followerID uint, username string) error
	IsFollowing(ctx context.Context, followerID uint, username string) (bool, error)
	Counts(ctx context.Context, userID uint) (FollowCounts, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	cache      *cache.Client
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, cache *cache.Client) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

func (s *followService) resolve(ctx context.Context, username string) (uint, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("resolve username: %w", err)
	}
	return user.ID, nil
}

// Follow inserts the edge follower -> username. Idempotent; fails on self-follow.
func (s *followService) Follow(ctx context.Context, followerID uint, username string) error {
	followedID, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if followedID == followerID {
		return apperrors.ErrSelfFollow
	}

	if err := s.followRepo.Create(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("create follow edge: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.FollowCountsKey(followerID))
	_ = s.cache.Delete(ctx, cache.FollowCountsKey(followedID))
	return nil
}

// Unfollow removes the edge if present; no-op otherwise.
func (s *followService) Unfollow(ctx context.Context, followerID uint, username string) error {
	followedID, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if followedID == followerID {
		return apperrors.ErrSelfFollow
	}

	if err := s.followRepo.Delete(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.FollowCountsKey(followerID))
	_ = s.cache.Delete(ctx, cache.FollowCountsKey(followedID))
	return nil
}

// IsFollowing reports whether follower -> username exists.
func (s *followService) IsFollowing(ctx context.Context, followerID uint, username string) (bool, error) {
	followedID, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, followerID, followedID)
}

// Counts returns follower/following totals with caching.
func (s *followService) Counts(ctx context.Context, userID uint) (FollowCounts, error) {
	if data, _ := s.cache.Get(ctx, cache.FollowCountsKey(userID)); data != nil {
		var cached FollowCounts
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return FollowCounts{}, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return FollowCounts{}, err
	}

	counts := FollowCounts{Followers: followers, Following: following}
	if payload, err := json.Marshal(counts); err == nil {
		_ = s.cache.Set(ctx, cache.FollowCountsKey(userID), payload, userCacheTTL)
	}
	return counts, nil
}
