package port

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned by Decode for a bad signature, a malformed token or an expired one.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload minted into a token.
type Claims map[string]any

// Claim keys set by the authenticate flow.
const (
	ClaimID       = "id"
	ClaimEmail    = "email"
	ClaimUsername = "username"
	ClaimType     = "type"
	ClaimAuthType = "auth_type"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// String returns the claim as a string, or "" when absent or of another type.
func (c Claims) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// TokenProvider issues and verifies signed tokens.
type TokenProvider interface {
	// Encode signs claims with an expiry of now + expiresIn. A non-positive
	// expiresIn mints a token that is already expired.
	Encode(claims Claims, expiresIn time.Duration) (string, error)
	// Decode verifies the token and returns its claims, or an error matching ErrInvalidToken.
	Decode(token string) (Claims, error)
	// IsValid reports whether Decode would succeed. It never fails.
	IsValid(token string) bool
}
