package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueTokens(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	access, refresh, err := tm.IssueTokens("42", []string{"MEMBER"})
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEqual(t, access, refresh)

	t.Run("access token carries subject and roles", func(t *testing.T) {
		claims, err := tm.ParseToken(access)
		require.NoError(t, err)
		require.Equal(t, "42", claims.Subject)
		require.Equal(t, []string{"MEMBER"}, claims.Roles)
	})

	t.Run("refresh token carries no roles", func(t *testing.T) {
		claims, err := tm.ParseToken(refresh)
		require.NoError(t, err)
		require.Equal(t, "42", claims.Subject)
		require.Empty(t, claims.Roles)
	})
}

func TestParseTokenFailures(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	access, _, err := tm.IssueTokens("42", []string{"MEMBER"})
	require.NoError(t, err)

	t.Run("garbage input", func(t *testing.T) {
		_, err := tm.ParseToken("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		_, err := tm.ParseToken(access[:len(access)-2] + "xx")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("signed with a different key", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour, 24*time.Hour)
		foreign, _, err := other.IssueTokens("42", nil)
		require.NoError(t, err)

		_, err = tm.ParseToken(foreign)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := tm.ParseToken(signedWithExpiry(t, time.Now().Add(-time.Minute)))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		_, err := tm.ParseToken(signedWithExpiry(t, time.Now()))
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenManagerDefaults(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)
	require.Equal(t, time.Hour, tm.accessTTL)
	require.Equal(t, 24*time.Hour, tm.refreshTTL)
}

func signedWithExpiry(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
