package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"podify/internal/cache"
	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/repository"
)

const publicProfileTTL = 5 * time.Minute

func publicProfileKey(id primitive.ObjectID) string {
	return fmt.Sprintf("profile:%s", id.Hex())
}

// ProfileService handles the social graph and public profile reads.
type ProfileService interface {
	ToggleFollow(ctx context.Context, actor, target primitive.ObjectID) (model.ToggleStatus, error)
	IsFollowing(ctx context.Context, actor, target primitive.ObjectID) (bool, error)
	Followers(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.FollowProfile, error)
	Followings(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.FollowProfile, error)
	Uploads(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.AudioSummary, error)
	PublicProfile(ctx context.Context, id primitive.ObjectID) (*model.PublicProfile, error)
	Recommended(ctx context.Context, user *primitive.ObjectID) ([]model.AudioSummary, error)
}

type profileService struct {
	users     repository.UserRepository
	audios    repository.AudioRepository
	histories repository.HistoryRepository
	cache     *cache.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(
	users repository.UserRepository,
	audios repository.AudioRepository,
	histories repository.HistoryRepository,
	cache *cache.Client,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		users:     users,
		audios:    audios,
		histories: histories,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// ToggleFollow makes actor follow target, or unfollow when already following.
// target's followers list is written first; when the actor's followings
// update fails the first write is rolled back.
func (s *profileService) ToggleFollow(ctx context.Context, actor, target primitive.ObjectID) (model.ToggleStatus, error) {
	if actor == target {
		return "", apperrors.ErrSelfFollow
	}
	if _, err := s.users.FindByID(ctx, target); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	following, err := s.users.HasFollower(ctx, target, actor)
	if err != nil {
		return "", fmt.Errorf("check follower: %w", err)
	}

	status := model.StatusFollow
	apply, revert := s.users.AddToFollowList, s.users.RemoveFromFollowList
	if following {
		status = model.StatusUnfollow
		apply, revert = s.users.RemoveFromFollowList, s.users.AddToFollowList
	}

	if err := apply(ctx, target, repository.FollowersField, actor); err != nil {
		return "", fmt.Errorf("update followers: %w", err)
	}
	if err := apply(ctx, actor, repository.FollowingsField, target); err != nil {
		if rerr := revert(ctx, target, repository.FollowersField, actor); rerr != nil {
			s.logger.Error("revert followers",
				zap.String("actor_id", actor.Hex()),
				zap.String("target_id", target.Hex()),
				zap.Error(rerr),
			)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("update followings: %w", err)
	}

	_ = s.cache.Delete(ctx, publicProfileKey(target))
	return status, nil
}

func (s *profileService) IsFollowing(ctx context.Context, actor, target primitive.ObjectID) (bool, error) {
	return s.users.HasFollower(ctx, target, actor)
}

func (s *profileService) Followers(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.FollowProfile, error) {
	return s.users.ListFollows(ctx, user, repository.FollowersField, page)
}

func (s *profileService) Followings(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.FollowProfile, error) {
	return s.users.ListFollows(ctx, user, repository.FollowingsField, page)
}

// Uploads lists owner's audios, newest first. Uploads of a user that no longer
// exists are not listed.
func (s *profileService) Uploads(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.AudioSummary, error) {
	user, err := s.users.FindByID(ctx, owner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []model.AudioSummary{}, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	audios, err := s.audios.ListByOwner(ctx, owner, page)
	if err != nil {
		return nil, err
	}
	ref := model.OwnerRef{ID: user.ID, Name: user.Name}
	summaries := make([]model.AudioSummary, 0, len(audios))
	for i := range audios {
		summaries = append(summaries, model.ToAudioSummary(&audios[i], ref))
	}
	return summaries, nil
}

// PublicProfile returns the public view of a user, served from cache when possible.
func (s *profileService) PublicProfile(ctx context.Context, id primitive.ObjectID) (*model.PublicProfile, error) {
	data, err := s.cache.Get(ctx, publicProfileKey(id))
	if err != nil {
		s.logger.Warn("read cached profile", zap.String("user_id", id.Hex()), zap.Error(err))
	}
	if data != nil {
		var cached model.PublicProfile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Debug("discard malformed cached profile", zap.String("user_id", id.Hex()))
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile := model.ToPublicProfile(user)
	if payload, err := json.Marshal(profile); err == nil {
		if err := s.cache.Set(ctx, publicProfileKey(id), payload, publicProfileTTL); err != nil {
			s.logger.Warn("cache profile", zap.String("user_id", id.Hex()), zap.Error(err))
		}
	}
	return &profile, nil
}

// Recommended ranks audios by like count within the categories the user
// played recently. Anonymous users and users without recent plays get the
// most liked audios overall.
func (s *profileService) Recommended(ctx context.Context, user *primitive.ObjectID) ([]model.AudioSummary, error) {
	var categories []string
	if user != nil {
		var err error
		categories, err = s.histories.RecentCategories(ctx, *user, s.now().Add(-query.RecommendationWindow))
		if err != nil {
			return nil, fmt.Errorf("recent categories: %w", err)
		}
	}
	return s.audios.Recommended(ctx, categories, query.RecommendationSize)
}
