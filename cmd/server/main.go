package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "podify/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"podify/internal/auth"
	"podify/internal/cache"
	"podify/internal/config"
	"podify/internal/db"
	"podify/internal/handler"
	"podify/internal/jobs"
	"podify/internal/logging"
	"podify/internal/mail"
	"podify/internal/repository"
	"podify/internal/router"
	"podify/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title Podify API
// @version 1.0
// @description Podcast and audio sharing API: accounts, uploads, favorites, playlists, listening history and follows.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, caching and token storage will fail until it is back", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	audioRepo := repository.NewAudioRepository(database)
	playlistRepo := repository.NewPlaylistRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	historyRepo := repository.NewHistoryRepository(database)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	mailer := mail.New(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer, cacheClient,
		service.Links{PasswordReset: cfg.PasswordResetLink, SignIn: cfg.SignInURL}, logger)
	audioService := service.NewAudioService(audioRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, audioRepo, logger)
	playlistService := service.NewPlaylistService(playlistRepo, audioRepo)
	historyService := service.NewHistoryService(historyRepo, audioRepo)
	profileService := service.NewProfileService(userRepo, audioRepo, historyRepo, cacheClient, logger)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, jwtService, logger, authService,
		func(ctx context.Context) error { return db.Ping(ctx, database) },
		router.Handlers{
			Auth:     handler.NewAuthHandler(authService),
			Audio:    handler.NewAudioHandler(audioService),
			Favorite: handler.NewFavoriteHandler(favoriteService),
			Playlist: handler.NewPlaylistHandler(playlistService),
			History:  handler.NewHistoryHandler(historyService),
			Profile:  handler.NewProfileHandler(profileService, playlistService),
		},
	)

	scheduler := jobs.NewScheduler(logger)
	if cfg.AutoPlaylistEnabled {
		generator := jobs.NewAutoPlaylistGenerator(audioRepo, playlistRepo, cacheClient, logger)
		if err := scheduler.Add("auto-playlist", cfg.AutoPlaylistSchedule, generator); err != nil {
			logger.Fatal("schedule auto playlists", zap.Error(err))
		}
		scheduler.Start()
	}

	logger.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	if err := cacheClient.Close(); err != nil {
		logger.Warn("close redis", zap.Error(err))
	}
	if err := database.Client().Disconnect(shutdownCtx); err != nil {
		logger.Warn("disconnect mongo", zap.Error(err))
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
