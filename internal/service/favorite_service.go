package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/repository"
)

// FavoriteService handles the favorite list of a user.
type FavoriteService interface {
	Toggle(ctx context.Context, user, audio primitive.ObjectID) (model.ToggleStatus, error)
	List(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.AudioSummary, error)
	IsFavorite(ctx context.Context, user, audio primitive.ObjectID) (bool, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	audios    repository.AudioRepository
	logger    *zap.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favorites repository.FavoriteRepository, audios repository.AudioRepository, logger *zap.Logger) FavoriteService {
	return &favoriteService{favorites: favorites, audios: audios, logger: logger}
}

// Toggle adds audio to the user's favorites or removes it when already there.
// The audio's like set follows the favorite list; if that second write fails
// the list change is rolled back.
func (s *favoriteService) Toggle(ctx context.Context, user, audio primitive.ObjectID) (model.ToggleStatus, error) {
	exists, err := s.audios.Exists(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("find audio: %w", err)
	}
	if !exists {
		return "", apperrors.ErrAudioNotFound
	}

	present, err := s.favorites.Contains(ctx, user, audio)
	if err != nil {
		return "", fmt.Errorf("check favorite: %w", err)
	}

	if present {
		if err := s.favorites.Remove(ctx, user, audio); err != nil {
			return "", fmt.Errorf("remove favorite: %w", err)
		}
		if err := s.audios.RemoveLike(ctx, audio, user); err != nil {
			s.compensate("restore favorite", s.favorites.Add(ctx, user, audio), user, audio)
			return "", s.likeError(err)
		}
		return model.StatusRemoved, nil
	}

	if err := s.favorites.Add(ctx, user, audio); err != nil {
		return "", fmt.Errorf("add favorite: %w", err)
	}
	if err := s.audios.AddLike(ctx, audio, user); err != nil {
		s.compensate("revert favorite", s.favorites.Remove(ctx, user, audio), user, audio)
		return "", s.likeError(err)
	}
	return model.StatusAdded, nil
}

func (s *favoriteService) likeError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrAudioNotFound
	}
	return fmt.Errorf("update likes: %w", err)
}

func (s *favoriteService) compensate(action string, err error, user, audio primitive.ObjectID) {
	if err != nil {
		s.logger.Error(action,
			zap.String("user_id", user.Hex()),
			zap.String("audio_id", audio.Hex()),
			zap.Error(err),
		)
	}
}

func (s *favoriteService) List(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.AudioSummary, error) {
	return s.favorites.Items(ctx, user, page)
}

func (s *favoriteService) IsFavorite(ctx context.Context, user, audio primitive.ObjectID) (bool, error) {
	return s.favorites.Contains(ctx, user, audio)
}
