package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"podify/internal/model"
	"podify/internal/service"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest represents a registration request.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,strongpassword"`
}

// VerifyTokenRequest carries a one-time token for a user.
type VerifyTokenRequest struct {
	Token  string `json:"token" validate:"required"`
	UserID string `json:"userId" validate:"required,objectid"`
}

// ReVerifyRequest asks for a new verification code.
type ReVerifyRequest struct {
	UserID string `json:"userId" validate:"required,objectid"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest sets a new password with a reset token.
type UpdatePasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	UserID   string `json:"userId" validate:"required,objectid"`
	Password string `json:"password" validate:"required,min=8,strongpassword"`
}

// SignInRequest represents a sign in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest edits the caller's profile.
type UpdateProfileRequest struct {
	Name   string          `json:"name" validate:"required,min=3,max=20"`
	Avatar *model.MediaRef `json:"avatar"`
}

// NewUser is the body returned after sign up.
type NewUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignInResponse carries the session token.
type SignInResponse struct {
	Profile model.Profile `json:"profile"`
	Token   string        `json:"token"`
}

// ProfileResponse wraps the caller's profile.
type ProfileResponse struct {
	Profile model.Profile `json:"profile"`
}

// SignUp godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Account data"
// @Success 201 {object} map[string]NewUser
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	user, err := h.authService.SignUp(c.Request().Context(), strings.TrimSpace(req.Name), strings.ToLower(req.Email), req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, map[string]NewUser{
		"user": {ID: user.ID.Hex(), Name: user.Name, Email: user.Email},
	})
}

// VerifyEmail godoc
// @Summary Verify the account email with the mailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyTokenRequest true "Code and user id"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req VerifyTokenRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	id, err := parseID(req.UserID)
	if err != nil {
		return err
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), id, req.Token); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "your email is verified"})
}

// ReVerifyEmail godoc
// @Summary Send a new verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ReVerifyRequest true "User id"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/re-verify-email [post]
func (h *AuthHandler) ReVerifyEmail(c echo.Context) error {
	var req ReVerifyRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	id, err := parseID(req.UserID)
	if err != nil {
		return err
	}

	if err := h.authService.ResendVerification(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Please check your mail box."})
}

// ForgotPassword godoc
// @Summary Mail a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), strings.ToLower(req.Email)); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Check your registered mail."})
}

// VerifyPassResetToken godoc
// @Summary Check a password reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyTokenRequest true "Token and user id"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/verify-pass-reset-token [post]
func (h *AuthHandler) VerifyPassResetToken(c echo.Context) error {
	var req VerifyTokenRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	id, err := parseID(req.UserID)
	if err != nil {
		return err
	}

	if err := h.authService.VerifyResetToken(c.Request().Context(), id, req.Token); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": true})
}

// UpdatePassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "Token, user id and new password"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/update-password [post]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	id, err := parseID(req.UserID)
	if err != nil {
		return err
	}

	if err := h.authService.UpdatePassword(c.Request().Context(), id, req.Token, req.Password); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password resets successfully."})
}

// SignIn godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} SignInResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.SignIn(c.Request().Context(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SignInResponse{Profile: model.ToProfile(user), Token: token})
}

// IsAuth godoc
// @Summary Current profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/is-auth [get]
func (h *AuthHandler) IsAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, ProfileResponse{Profile: model.ToProfile(CurrentUser(c))})
}

// LogOut godoc
// @Summary End the current session, or every session with fromAll=yes
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param fromAll query string false "yes to log out everywhere"
// @Success 200 {object} SuccessResponse
// @Router /auth/log-out [post]
func (h *AuthHandler) LogOut(c echo.Context) error {
	user := CurrentUser(c)
	fromAll := c.QueryParam("fromAll") == "yes"

	if err := h.authService.LogOut(c.Request().Context(), user.ID, currentToken(c), fromAll); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// UpdateProfile godoc
// @Summary Update name and avatar
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} ProfileResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/update-profile [post]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), CurrentUser(c).ID, strings.TrimSpace(req.Name), req.Avatar)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{Profile: model.ToProfile(user)})
}
