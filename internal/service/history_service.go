package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/repository"
)

// HistoryService records and reads play history.
type HistoryService interface {
	Record(ctx context.Context, owner, audio primitive.ObjectID, progress float64, date time.Time) error
	ByDay(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.HistoryDay, error)
	RecentlyPlayed(ctx context.Context, owner primitive.ObjectID) ([]model.AudioSummary, error)
	DeleteAll(ctx context.Context, owner primitive.ObjectID) error
	Remove(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error
}

type historyService struct {
	histories repository.HistoryRepository
	audios    repository.AudioRepository
	now       func() time.Time
}

// NewHistoryService creates a new history service.
func NewHistoryService(histories repository.HistoryRepository, audios repository.AudioRepository) HistoryService {
	return &historyService{histories: histories, audios: audios, now: time.Now}
}

// Record stores a play. A second play of the same audio on the same calendar
// day (UTC, of the submitted date) updates the existing entry instead of
// adding one.
func (s *historyService) Record(ctx context.Context, owner, audio primitive.ObjectID, progress float64, date time.Time) error {
	exists, err := s.audios.Exists(ctx, audio)
	if err != nil {
		return fmt.Errorf("find audio: %w", err)
	}
	if !exists {
		return apperrors.ErrAudioNotFound
	}

	if date.IsZero() {
		date = s.now()
	}
	entry := model.HistoryEntry{Audio: audio, Progress: progress, Date: date.UTC()}

	id, found, err := s.histories.FindSameDayEntry(ctx, owner, audio, entry.Date)
	if err != nil {
		return fmt.Errorf("find history entry: %w", err)
	}
	if found {
		entry.ID = id
		if err := s.histories.UpdateEntry(ctx, owner, entry); err != nil {
			return fmt.Errorf("update history entry: %w", err)
		}
		return nil
	}

	entry.ID = primitive.NewObjectID()
	if err := s.histories.PushEntry(ctx, owner, entry); err != nil {
		return fmt.Errorf("push history entry: %w", err)
	}
	return nil
}

func (s *historyService) ByDay(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.HistoryDay, error) {
	return s.histories.ByDay(ctx, owner, page)
}

func (s *historyService) RecentlyPlayed(ctx context.Context, owner primitive.ObjectID) ([]model.AudioSummary, error) {
	return s.histories.RecentlyPlayed(ctx, owner, query.RecentlyPlayedSize)
}

func (s *historyService) DeleteAll(ctx context.Context, owner primitive.ObjectID) error {
	return s.histories.DeleteAll(ctx, owner)
}

func (s *historyService) Remove(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.histories.RemoveEntries(ctx, owner, ids)
}
