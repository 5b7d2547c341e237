package router

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"podify/internal/auth"
	apperrors "podify/internal/errors"
	"podify/internal/handler"
	"podify/internal/service"
)

// sessionToken is what bearer stores under the "user" context key.
type sessionToken struct {
	Claims *auth.Claims
	Raw    string
}

// bearer verifies the Authorization: Bearer token signature and expiry. With
// optional set, a missing or invalid token lets the request through anonymously.
func bearer(tokens *auth.JWTService, optional bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(_ echo.Context, raw string) (interface{}, error) {
			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				return nil, err
			}
			return &sessionToken{Claims: claims, Raw: raw}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if optional {
				return nil
			}
			return reject(apperrors.ErrUnauthorized)
		},
		ContinueOnIgnoredError: optional,
	})
}

// session loads the token's user and checks the token is still active.
func session(authService service.AuthService, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*sessionToken)
			if !ok {
				if optional {
					return next(c)
				}
				return reject(apperrors.ErrUnauthorized)
			}

			user, err := authService.Authenticate(c.Request().Context(), token.Claims.UserID, token.Raw)
			if err != nil {
				if optional && errors.Is(err, apperrors.ErrUnauthorized) {
					return next(c)
				}
				return reject(err)
			}
			handler.SetSession(c, user, token.Raw)
			return next(c)
		}
	}
}

// MustAuth rejects requests without an active session.
func MustAuth(tokens *auth.JWTService, authService service.AuthService) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{bearer(tokens, false), session(authService, false)}
}

// OptionalAuth loads the session when a valid one is presented.
func OptionalAuth(tokens *auth.JWTService, authService service.AuthService) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{bearer(tokens, true), session(authService, true)}
}

// RequireVerified rejects users that have not verified their email. It must
// run after MustAuth.
func RequireVerified(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := handler.CurrentUser(c)
		if user == nil {
			return reject(apperrors.ErrUnauthorized)
		}
		if !user.Verified {
			return reject(apperrors.ErrUnverified)
		}
		return next(c)
	}
}

func reject(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
