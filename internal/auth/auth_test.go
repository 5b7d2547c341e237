package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podify/internal/cache"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("652f1c9e8b3a4d0012345678")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "652f1c9e8b3a4d0012345678", claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	a, err := svc.GenerateToken("u1")
	require.NoError(t, err)
	b, err := svc.GenerateToken("u1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)

	foreign, err := other.GenerateToken("u1")
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(OTPLength)
	require.NoError(t, err)
	assert.Len(t, otp, OTPLength)
	assert.Regexp(t, `^[0-9]{6}$`, otp)
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, a, resetTokenBytes*2)
	assert.NotEqual(t, a, b)
}

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret#123", hash)
	assert.True(t, CompareSecret(hash, "secret#123"))
	assert.False(t, CompareSecret(hash, "secret#124"))
}

func TestTokenStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	ok, err := store.Compare(ctx, VerificationToken, "u1", "123456")
	require.NoError(t, err)
	assert.False(t, ok, "missing token never matches")

	require.NoError(t, store.Store(ctx, VerificationToken, "u1", "123456"))

	raw, err := mr.Get("verify:u1")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", raw, "token is stored hashed")

	ok, err = store.Compare(ctx, VerificationToken, "u1", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Compare(ctx, VerificationToken, "u1", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Compare(ctx, PasswordResetToken, "u1", "123456")
	require.NoError(t, err)
	assert.False(t, ok, "kinds do not share tokens")

	require.NoError(t, store.Delete(ctx, VerificationToken, "u1"))
	ok, err = store.Compare(ctx, VerificationToken, "u1", "123456")
	require.NoError(t, err)
	assert.False(t, ok, "deleted tokens no longer match")
}

func TestTokenStore_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, PasswordResetToken, "u1", "tok"))
	mr.FastForward(TokenTTL + time.Second)

	ok, err := store.Compare(ctx, PasswordResetToken, "u1", "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}
