// Package jobs holds the background work of the service: the daily
// auto-playlist rebuild and the scheduler that triggers it.
package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"podify/internal/cache"
	"podify/internal/repository"
)

const (
	// AutoPlaylistPool is how many of the most liked audios are sampled from.
	AutoPlaylistPool int64 = 100
	// AutoPlaylistSample is how many audios a run distributes over categories.
	AutoPlaylistSample int64 = 20

	autoPlaylistLockKey = "jobs:auto-playlist"
	autoPlaylistLockTTL = 10 * time.Minute
)

// AutoPlaylistGenerator rebuilds one auto playlist per category from a
// sample of popular audios.
type AutoPlaylistGenerator struct {
	audios    repository.AudioRepository
	playlists repository.PlaylistRepository
	cache     *cache.Client
	logger    *zap.Logger
}

// NewAutoPlaylistGenerator creates the generator.
func NewAutoPlaylistGenerator(audios repository.AudioRepository, playlists repository.PlaylistRepository, cache *cache.Client, logger *zap.Logger) *AutoPlaylistGenerator {
	return &AutoPlaylistGenerator{audios: audios, playlists: playlists, cache: cache, logger: logger}
}

// Run samples audios and upserts one playlist per sampled category. Running
// it again replaces items but never creates a second playlist for a category.
// A run is skipped while another one holds the lock; if the lock itself is
// unavailable the run proceeds.
func (g *AutoPlaylistGenerator) Run(ctx context.Context) error {
	acquired, err := g.cache.SetNX(ctx, autoPlaylistLockKey, autoPlaylistLockTTL)
	switch {
	case err != nil:
		g.logger.Warn("auto playlist lock unavailable", zap.Error(err))
	case !acquired:
		g.logger.Info("auto playlist run already in progress")
		return nil
	default:
		defer func() { _ = g.cache.Delete(context.Background(), autoPlaylistLockKey) }()
	}

	start := time.Now()
	groups, err := g.audios.SampleByCategory(ctx, AutoPlaylistPool, AutoPlaylistSample)
	if err != nil {
		return fmt.Errorf("sample audios: %w", err)
	}

	for _, group := range groups {
		if err := g.playlists.UpsertAuto(ctx, group.Category, group.Audios); err != nil {
			return fmt.Errorf("upsert auto playlist %q: %w", group.Category, err)
		}
	}

	g.logger.Info("auto playlists generated",
		zap.Int("categories", len(groups)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
