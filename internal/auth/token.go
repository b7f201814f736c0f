package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome for every verification failure.
// Bad signature, malformed structure and expiry are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT token pairs.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager. Zero TTLs fall back to the
// defaults of 1h access / 24h refresh.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	if refreshTTL == 0 {
		refreshTTL = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload. Roles is present on access tokens
// only; a refresh token carries the bare subject and cannot authorize
// role-gated actions.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// IssueTokens signs an access/refresh token pair for the subject.
func (tm *TokenManager) IssueTokens(subject string, roles []string) (string, string, error) {
	now := time.Now()

	access, err := tm.sign(&Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTTL)),
		},
	})
	if err != nil {
		return "", "", err
	}

	refresh, err := tm.sign(&Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.refreshTTL)),
		},
	})
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (tm *TokenManager) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseToken validates signature and expiry and returns the claims.
// Expiry is exclusive: a token presented at exactly its expiry time is
// already invalid.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
