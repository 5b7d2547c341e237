package router

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"podify/internal/auth"
	"podify/internal/handler"
	"podify/internal/logging"
	"podify/internal/service"
)

// Handlers groups the HTTP handlers mounted under /api/v1.
type Handlers struct {
	Auth     *handler.AuthHandler
	Audio    *handler.AudioHandler
	Favorite *handler.FavoriteHandler
	Playlist *handler.PlaylistHandler
	History  *handler.HistoryHandler
	Profile  *handler.ProfileHandler
}

// HealthCheck reports whether the backing stores are reachable.
type HealthCheck func(ctx context.Context) error

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokens *auth.JWTService,
	logger *zap.Logger,
	authService service.AuthService,
	health HealthCheck,
	h Handlers,
) {
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		if err := health(c.Request().Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			return c.String(http.StatusServiceUnavailable, "unavailable")
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mustAuth := MustAuth(tokens, authService)
	verified := append(MustAuth(tokens, authService), RequireVerified)

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", h.Auth.SignUp)
	authGroup.POST("/verify-email", h.Auth.VerifyEmail)
	authGroup.POST("/re-verify-email", h.Auth.ReVerifyEmail)
	authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
	authGroup.POST("/verify-pass-reset-token", h.Auth.VerifyPassResetToken)
	authGroup.POST("/update-password", h.Auth.UpdatePassword)
	authGroup.POST("/signin", h.Auth.SignIn)
	authGroup.GET("/is-auth", h.Auth.IsAuth, mustAuth...)
	authGroup.POST("/log-out", h.Auth.LogOut, mustAuth...)
	authGroup.POST("/update-profile", h.Auth.UpdateProfile, mustAuth...)

	audio := api.Group("/audio")
	audio.POST("", h.Audio.Create, verified...)
	audio.PATCH("/:id", h.Audio.Update, verified...)
	audio.GET("/latest-uploads", h.Audio.Latest)

	favorite := api.Group("/favorite")
	favorite.POST("", h.Favorite.Toggle, verified...)
	favorite.GET("", h.Favorite.List, mustAuth...)
	favorite.GET("/is-favorite", h.Favorite.IsFav, mustAuth...)

	playlist := api.Group("/playlist")
	playlist.POST("/create", h.Playlist.Create, verified...)
	playlist.PATCH("/:id", h.Playlist.Update, verified...)
	playlist.DELETE("/:id", h.Playlist.Delete, verified...)
	playlist.GET("/me", h.Playlist.ByProfile, verified...)
	playlist.GET("/auto", h.Playlist.Auto)
	playlist.GET("/:id", h.Playlist.Detail, mustAuth...)

	history := api.Group("/history", mustAuth...)
	history.POST("", h.History.Record)
	history.GET("", h.History.List)
	history.GET("/recently-played", h.History.RecentlyPlayed)
	history.DELETE("", h.History.Delete)

	profile := api.Group("/profile")
	profile.POST("/update-follower/:id", h.Profile.UpdateFollower, verified...)
	profile.GET("/uploads", h.Profile.Uploads, mustAuth...)
	profile.GET("/uploads/:id", h.Profile.PublicUploads)
	profile.GET("/infos/:id", h.Profile.PublicProfile)
	profile.GET("/playlists/:id", h.Profile.PublicPlaylists)
	profile.GET("/playlists-audios/:id", h.Profile.PlaylistAudios)
	profile.GET("/recommended", h.Profile.Recommended, OptionalAuth(tokens, authService)...)
	profile.GET("/followers", h.Profile.Followers, mustAuth...)
	profile.GET("/followings", h.Profile.Followings, mustAuth...)
	profile.GET("/followers/:id", h.Profile.FollowersOf, mustAuth...)
	profile.GET("/is-following/:id", h.Profile.IsFollowing, mustAuth...)
}
