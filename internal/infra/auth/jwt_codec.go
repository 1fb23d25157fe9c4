// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"habitly/config"
	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/service"
)

// tokenClaims is the wire layout of a signed token.
type tokenClaims struct {
	Category string `json:"category"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
// All operations are pure functions of (token, secret) and safe for concurrent use.
type jwtCodec struct {
	secret     []byte        // Shared HMAC-SHA256 signing secret, fixed at startup.
	accessTTL  time.Duration // Time-to-live for access tokens.
	refreshTTL time.Duration // Time-to-live for refresh tokens.
}

// NewJWTCodec is the constructor for jwtCodec.
// It takes configuration values to create a new token codec instance.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}
	if cfg.Auth == nil || cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return nil, errors.New("token lifetimes must be configured")
	}
	if cfg.Auth.RefreshTokenTTL <= cfg.Auth.AccessTokenTTL {
		return nil, errors.New("refresh token lifetime must exceed access token lifetime")
	}

	return &jwtCodec{
		secret:     []byte(cfg.SecretKey.Signing),
		accessTTL:  cfg.Auth.AccessTokenTTL,
		refreshTTL: cfg.Auth.RefreshTokenTTL,
	}, nil
}

// Mint builds claims for the given subject and signs them with HMAC-SHA256.
func (s *jwtCodec) Mint(category service.TokenCategory, username string, role entity.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		Category: string(category),
		Username: username,
		Role:     role.Wire(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Parse verifies the signature and structure of a token and returns its claims.
// Expiry is deliberately not validated here: consumers check IsExpired
// themselves before acting on claims.
func (s *jwtCodec) Parse(encoded string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(encoded, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("failed to parse token structure")
	}

	raw, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("token claims have unexpected type")
	}

	return toClaims(raw)
}

// toClaims validates required claims and maps them into the domain form.
func toClaims(raw *tokenClaims) (*service.Claims, error) {
	if raw.Username == "" || raw.IssuedAt == nil || raw.ExpiresAt == nil {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("token is missing required claims")
	}

	category := service.TokenCategory(raw.Category)
	switch category {
	case service.CategoryAccess, service.CategoryRefresh:
	default:
		return nil, domainerrors.ErrMalformedToken.WrapMessage("token carries an unknown category")
	}

	role, ok := entity.RoleFromWire(raw.Role)
	if !ok {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("token carries an unknown role")
	}

	return &service.Claims{
		Category:  category,
		Username:  raw.Username,
		Role:      role,
		IssuedAt:  raw.IssuedAt.Time,
		ExpiresAt: raw.ExpiresAt.Time,
	}, nil
}

// IsExpired reports whether a validly-signed token has expired.
func (s *jwtCodec) IsExpired(encoded string) (bool, error) {
	claims, err := s.Parse(encoded)
	if err != nil {
		return false, err
	}

	return time.Now().After(claims.ExpiresAt), nil
}

// Category returns the category claim of a validly-signed token.
func (s *jwtCodec) Category(encoded string) (service.TokenCategory, error) {
	claims, err := s.Parse(encoded)
	if err != nil {
		return "", err
	}

	return claims.Category, nil
}

// Subject returns the username claim of a validly-signed token.
func (s *jwtCodec) Subject(encoded string) (string, error) {
	claims, err := s.Parse(encoded)
	if err != nil {
		return "", err
	}

	return claims.Username, nil
}

// Role returns the role claim of a validly-signed token.
func (s *jwtCodec) Role(encoded string) (entity.Role, error) {
	claims, err := s.Parse(encoded)
	if err != nil {
		return "", err
	}

	return claims.Role, nil
}

// AccessTokenTTL returns the configured lifetime for access tokens.
func (s *jwtCodec) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured lifetime for refresh tokens.
func (s *jwtCodec) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}
