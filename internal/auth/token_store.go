package auth

import (
	"context"
	"fmt"
	"time"

	"podify/internal/cache"
)

// TokenKind separates the one-time token namespaces.
type TokenKind string

const (
	// VerificationToken is the OTP mailed after signup.
	VerificationToken TokenKind = "verify"
	// PasswordResetToken is the token embedded in a reset link.
	PasswordResetToken TokenKind = "reset"

	// TokenTTL is how long a one-time token stays usable.
	TokenTTL = time.Hour
)

// TokenStoreInterface defines the interface for one-time token storage.
type TokenStoreInterface interface {
	Store(ctx context.Context, kind TokenKind, userID, token string) error
	Compare(ctx context.Context, kind TokenKind, userID, token string) (bool, error)
	Delete(ctx context.Context, kind TokenKind, userID string) error
}

// TokenStore keeps bcrypt hashes of one-time tokens in Redis, one per user
// and kind. Storing a new token replaces the previous one.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

func tokenKey(kind TokenKind, userID string) string {
	return string(kind) + ":" + userID
}

// Store hashes token and saves it with TokenTTL.
func (s *TokenStore) Store(ctx context.Context, kind TokenKind, userID, token string) error {
	hash, err := HashSecret(token)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, tokenKey(kind, userID), []byte(hash), TokenTTL); err != nil {
		return fmt.Errorf("store %s token: %w", kind, err)
	}
	return nil
}

// Compare reports whether token matches the stored one. A missing or expired
// token never matches.
func (s *TokenStore) Compare(ctx context.Context, kind TokenKind, userID, token string) (bool, error) {
	hash, err := s.cache.Get(ctx, tokenKey(kind, userID))
	if err != nil {
		return false, fmt.Errorf("load %s token: %w", kind, err)
	}
	if hash == nil {
		return false, nil
	}
	return CompareSecret(string(hash), token), nil
}

// Delete removes the stored token.
func (s *TokenStore) Delete(ctx context.Context, kind TokenKind, userID string) error {
	if err := s.cache.Delete(ctx, tokenKey(kind, userID)); err != nil {
		return fmt.Errorf("delete %s token: %w", kind, err)
	}
	return nil
}
