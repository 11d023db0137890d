// internal/pkg/auth/token.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInspector performs local inspection of upstream bearer tokens.
// The storefront does not hold the upstream signing secret, so tokens are
// never verified here; the upstream API stays the authority on validity.
type TokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector creates a new token inspector
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{
		parser: jwt.NewParser(),
	}
}

// Expired reports whether the token carries an exp claim in the past.
// Opaque or malformed tokens are reported as not expired: restoration is
// trust-on-read and staleness is detected lazily on the first 401.
func (t *TokenInspector) Expired(tokenString string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := t.parser.ParseUnverified(tokenString, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(now)
}
