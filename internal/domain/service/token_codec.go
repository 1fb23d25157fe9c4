// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"

	"habitly/internal/domain/entity"
)

// TokenCategory distinguishes access tokens from refresh tokens.
// A token is only valid at an endpoint expecting its category.
type TokenCategory string

const (
	// CategoryAccess marks a short-lived bearer token authorizing individual requests.
	CategoryAccess TokenCategory = "access"
	// CategoryRefresh marks a long-lived token used only to mint new access tokens.
	CategoryRefresh TokenCategory = "refresh"
)

// Claims are the verified contents of a signed token. They are
// reconstructed from the wire form on every parse; nothing is persisted.
type Claims struct {
	Category  TokenCategory
	Username  string
	Role      entity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec mints and parses signed bearer tokens. Implementations are
// pure functions of (token, secret) and safe for concurrent use.
//
// Parse verifies the signature and structure only; it does not reject an
// expired token. Consumers must call IsExpired before acting on claims
// (two-step verify-then-expiry).
type TokenCodec interface {
	// Mint builds and signs a token for the given subject and role.
	Mint(category TokenCategory, username string, role entity.Role, ttl time.Duration) (string, error)

	// Parse verifies the signature and returns the claims. An invalid
	// signature, truncated encoding, or missing required claim yields
	// domain errors.ErrMalformedToken.
	Parse(encoded string) (*Claims, error)

	// IsExpired reports whether a validly-signed token has expired.
	// It never fails on a validly-signed token.
	IsExpired(encoded string) (bool, error)

	// Category returns the category claim of a validly-signed token.
	Category(encoded string) (TokenCategory, error)

	// Subject returns the username claim of a validly-signed token.
	Subject(encoded string) (string, error)

	// Role returns the role claim of a validly-signed token.
	Role(encoded string) (entity.Role, error)

	// AccessTokenTTL returns the configured lifetime for access tokens.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured lifetime for refresh tokens.
	RefreshTokenTTL() time.Duration
}
