package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"podify/internal/auth"
	"podify/internal/cache"
	apperrors "podify/internal/errors"
	"podify/internal/mail"
	"podify/internal/model"
	"podify/internal/repository"
)

// Links are the client URLs embedded in account emails.
type Links struct {
	PasswordReset string
	SignIn        string
}

// AuthService handles account and session operations.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*model.User, error)
	VerifyEmail(ctx context.Context, userID primitive.ObjectID, token string) error
	ResendVerification(ctx context.Context, userID primitive.ObjectID) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, userID primitive.ObjectID, token string) error
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, token, password string) error
	SignIn(ctx context.Context, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, userID, token string) (*model.User, error)
	LogOut(ctx context.Context, userID primitive.ObjectID, token string, fromAll bool) error
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string, avatar *model.MediaRef) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     mail.Mailer
	cache      *cache.Client
	links      Links
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Mailer,
	cache *cache.Client,
	links Links,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		cache:      cache,
		links:      links,
		logger:     logger,
	}
}

// SignUp creates an unverified account and mails it a verification code.
func (s *authService) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashSecret(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Email: email, Password: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Warn("send verification", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}
	return user, nil
}

func (s *authService) sendVerification(ctx context.Context, user *model.User) error {
	otp, err := auth.GenerateOTP(auth.OTPLength)
	if err != nil {
		return err
	}
	if err := s.tokenStore.Store(ctx, auth.VerificationToken, user.ID.Hex(), otp); err != nil {
		return err
	}
	return s.mailer.SendVerification(ctx, user.Email, user.Name, otp)
}

// VerifyEmail marks the account verified when token matches and consumes it.
func (s *authService) VerifyEmail(ctx context.Context, userID primitive.ObjectID, token string) error {
	ok, err := s.tokenStore.Compare(ctx, auth.VerificationToken, userID.Hex(), token)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidToken
	}

	if err := s.userRepo.SetVerified(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("verify user: %w", err)
	}

	if err := s.tokenStore.Delete(ctx, auth.VerificationToken, userID.Hex()); err != nil {
		s.logger.Warn("delete verification token", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return nil
}

// ResendVerification replaces the pending verification code with a new one.
func (s *authService) ResendVerification(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.sendVerification(ctx, user); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}
	return nil
}

// ForgotPassword mails a single-use reset link to the account owner.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := s.tokenStore.Store(ctx, auth.PasswordResetToken, user.ID.Hex(), token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s&userId=%s", s.links.PasswordReset, token, user.ID.Hex())
	if err := s.mailer.SendPasswordResetLink(ctx, user.Email, link); err != nil {
		return fmt.Errorf("send reset link: %w", err)
	}
	return nil
}

func (s *authService) VerifyResetToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	ok, err := s.tokenStore.Compare(ctx, auth.PasswordResetToken, userID.Hex(), token)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidToken
	}
	return nil
}

// UpdatePassword sets a new password using a reset token. The token is
// consumed and every other session stays valid.
func (s *authService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, token, password string) error {
	if err := s.VerifyResetToken(ctx, userID, token); err != nil {
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if auth.CompareSecret(user.Password, password) {
		return apperrors.ErrSamePassword
	}

	hash, err := auth.HashSecret(password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.tokenStore.Delete(ctx, auth.PasswordResetToken, userID.Hex()); err != nil {
		s.logger.Warn("delete reset token", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	if err := s.mailer.SendPasswordChanged(ctx, user.Email, user.Name, s.links.SignIn); err != nil {
		s.logger.Warn("send password changed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return nil
}

// SignIn checks the credentials and opens a new session.
func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if !auth.CompareSecret(user.Password, password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.userRepo.AddToken(ctx, user.ID, token); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}
	user.Tokens = append(user.Tokens, token)
	return user, token, nil
}

// Authenticate resolves the user of a verified bearer token. A token that
// was logged out is rejected even if its signature is still valid.
func (s *authService) Authenticate(ctx context.Context, userID, token string) (*model.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	for _, t := range user.Tokens {
		if t == token {
			return user, nil
		}
	}
	return nil, apperrors.ErrUnauthorized
}

// LogOut ends the current session, or every session when fromAll is set.
func (s *authService) LogOut(ctx context.Context, userID primitive.ObjectID, token string, fromAll bool) error {
	var err error
	if fromAll {
		err = s.userRepo.ClearTokens(ctx, userID)
	} else {
		err = s.userRepo.RemoveToken(ctx, userID, token)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrUserNotFound
	}
	return err
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string, avatar *model.MediaRef) (*model.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, userID, name, avatar)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, publicProfileKey(userID))
	return user, nil
}

func (s *authService) findUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
