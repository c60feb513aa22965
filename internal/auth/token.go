package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the uniform verification failure. Expired, malformed,
// badly signed and subject-less tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT access tokens. Tokens
// are stateless; there is no revocation list, so a token stays valid for
// its full TTL regardless of logout or later account changes.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// GenerateToken signs a JWT whose subject is the account username. A
// non-zero ttlOverride replaces the default lifetime.
func (tm *TokenManager) GenerateToken(username string, ttlOverride time.Duration) (string, time.Time, error) {
	ttl := tm.ttl
	if ttlOverride != 0 {
		ttl = ttlOverride
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature and expiry and returns the subject
// username. Any failure maps to ErrInvalidToken.
func (tm *TokenManager) ParseToken(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
