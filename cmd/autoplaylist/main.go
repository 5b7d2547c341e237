package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"podify/internal/cache"
	"podify/internal/config"
	"podify/internal/db"
	"podify/internal/jobs"
	"podify/internal/logging"
	"podify/internal/repository"
)

const runTimeout = 5 * time.Minute

// Runs the auto playlist generator once and exits.
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Client().Disconnect(context.Background()) }()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	generator := jobs.NewAutoPlaylistGenerator(
		repository.NewAudioRepository(database),
		repository.NewPlaylistRepository(database),
		cacheClient,
		logger,
	)

	if err := generator.Run(ctx); err != nil {
		logger.Fatal("auto playlist run failed", zap.Error(err))
	}
}
