package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/repository"
)

// AudioInput is the editable content of an audio.
type AudioInput struct {
	Title    string
	About    string
	Category string
	File     model.MediaRef
	Poster   *model.MediaRef
}

// AudioService handles audio uploads.
type AudioService interface {
	Create(ctx context.Context, owner primitive.ObjectID, in AudioInput) (*model.Audio, error)
	Update(ctx context.Context, id, owner primitive.ObjectID, in AudioInput) (*model.Audio, error)
	Latest(ctx context.Context) ([]model.AudioSummary, error)
}

type audioService struct {
	repo repository.AudioRepository
}

// NewAudioService creates a new audio service.
func NewAudioService(repo repository.AudioRepository) AudioService {
	return &audioService{repo: repo}
}

func (s *audioService) Create(ctx context.Context, owner primitive.ObjectID, in AudioInput) (*model.Audio, error) {
	audio := &model.Audio{
		Title:    in.Title,
		About:    in.About,
		Category: in.Category,
		Owner:    owner,
		File:     in.File,
		Poster:   in.Poster,
	}
	if err := s.repo.Create(ctx, audio); err != nil {
		return nil, fmt.Errorf("create audio: %w", err)
	}
	return audio, nil
}

// Update edits an audio the caller owns. Audios of other users are reported as missing.
func (s *audioService) Update(ctx context.Context, id, owner primitive.ObjectID, in AudioInput) (*model.Audio, error) {
	audio, err := s.repo.UpdateOwned(ctx, id, owner, repository.AudioUpdate{
		Title:    in.Title,
		About:    in.About,
		Category: in.Category,
		Poster:   in.Poster,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAudioNotFound
		}
		return nil, fmt.Errorf("update audio: %w", err)
	}
	return audio, nil
}

func (s *audioService) Latest(ctx context.Context) ([]model.AudioSummary, error) {
	return s.repo.Latest(ctx, query.LatestUploadsSize)
}
