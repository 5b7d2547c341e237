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

// PlaylistService handles user playlists and read access to auto playlists.
type PlaylistService interface {
	Create(ctx context.Context, owner primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error)
	Update(ctx context.Context, owner, id primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error)
	Delete(ctx context.Context, owner, id primitive.ObjectID) error
	RemoveItem(ctx context.Context, owner, id, item primitive.ObjectID) error
	ListByProfile(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.PlaylistInfo, error)
	Detail(ctx context.Context, owner, id primitive.ObjectID) (*model.PlaylistDetail, error)
	ListAuto(ctx context.Context) ([]model.PlaylistInfo, error)
	PublicPlaylists(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.PlaylistInfo, error)
	PublicPlaylistAudios(ctx context.Context, id primitive.ObjectID, page query.Page) (*model.PlaylistDetail, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	audios    repository.AudioRepository
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(playlists repository.PlaylistRepository, audios repository.AudioRepository) PlaylistService {
	return &playlistService{playlists: playlists, audios: audios}
}

func (s *playlistService) ensureAudio(ctx context.Context, item *primitive.ObjectID) error {
	if item == nil {
		return nil
	}
	exists, err := s.audios.Exists(ctx, *item)
	if err != nil {
		return fmt.Errorf("find audio: %w", err)
	}
	if !exists {
		return apperrors.ErrAudioNotFound
	}
	return nil
}

// Create makes a playlist, optionally seeded with one audio.
func (s *playlistService) Create(ctx context.Context, owner primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error) {
	if err := s.ensureAudio(ctx, item); err != nil {
		return nil, err
	}
	playlist := &model.Playlist{Title: title, Owner: owner, Visibility: visibility}
	if item != nil {
		playlist.Items = []primitive.ObjectID{*item}
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return playlist, nil
}

// Update renames an owned playlist, changes its visibility and optionally adds an audio.
func (s *playlistService) Update(ctx context.Context, owner, id primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error) {
	if err := s.ensureAudio(ctx, item); err != nil {
		return nil, err
	}
	playlist, err := s.playlists.UpdateOwned(ctx, id, owner, title, visibility, item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	deleted, err := s.playlists.DeleteOwned(ctx, id, owner)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if !deleted {
		return apperrors.ErrPlaylistNotFound
	}
	return nil
}

func (s *playlistService) RemoveItem(ctx context.Context, owner, id, item primitive.ObjectID) error {
	found, err := s.playlists.RemoveItem(ctx, id, owner, item)
	if err != nil {
		return fmt.Errorf("remove playlist item: %w", err)
	}
	if !found {
		return apperrors.ErrPlaylistNotFound
	}
	return nil
}

// ListByProfile lists the caller's own public and private playlists.
func (s *playlistService) ListByProfile(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.PlaylistInfo, error) {
	playlists, err := s.playlists.ListByOwner(ctx, owner, false, page)
	if err != nil {
		return nil, err
	}
	return toPlaylistInfos(playlists), nil
}

// Detail returns an owned playlist with every item populated.
func (s *playlistService) Detail(ctx context.Context, owner, id primitive.ObjectID) (*model.PlaylistDetail, error) {
	playlist, err := s.playlists.FindOwned(ctx, id, owner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	audios, err := s.playlists.Items(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return &model.PlaylistDetail{ID: playlist.ID, Title: playlist.Title, Audios: audios}, nil
}

func (s *playlistService) ListAuto(ctx context.Context) ([]model.PlaylistInfo, error) {
	playlists, err := s.playlists.ListAuto(ctx)
	if err != nil {
		return nil, err
	}
	return toPlaylistInfos(playlists), nil
}

// PublicPlaylists lists what other users can see of owner's playlists.
func (s *playlistService) PublicPlaylists(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.PlaylistInfo, error) {
	playlists, err := s.playlists.ListByOwner(ctx, owner, true, page)
	if err != nil {
		return nil, err
	}
	return toPlaylistInfos(playlists), nil
}

// PublicPlaylistAudios pages through a public or auto playlist. Private
// playlists are reported as missing.
func (s *playlistService) PublicPlaylistAudios(ctx context.Context, id primitive.ObjectID, page query.Page) (*model.PlaylistDetail, error) {
	playlist, err := s.playlists.FindPublic(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	audios, err := s.playlists.Items(ctx, id, &page)
	if err != nil {
		return nil, err
	}
	return &model.PlaylistDetail{ID: playlist.ID, Title: playlist.Title, Audios: audios}, nil
}

func toPlaylistInfos(playlists []model.Playlist) []model.PlaylistInfo {
	infos := make([]model.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		infos = append(infos, model.ToPlaylistInfo(&playlists[i]))
	}
	return infos
}
