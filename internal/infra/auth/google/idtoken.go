package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"habitly/internal/domain/entity"

	"github.com/pkg/errors"
)

// idTokenClaims represents the claims in a Google ID token.
type idTokenClaims struct {
	Iss           string `json:"iss"`            // Issuer
	Sub           string `json:"sub"`            // Subject (user ID)
	Aud           string `json:"aud"`            // Audience (client ID)
	Exp           int64  `json:"exp"`            // Expiration time
	Iat           int64  `json:"iat"`            // Issued at
	Email         string `json:"email"`          // User's email
	EmailVerified bool   `json:"email_verified"` // Email verification status
	Name          string `json:"name"`           // User's full name
}

// VerifyIDToken verifies a Google-issued ID token and returns the
// identity claims it carries.
func (p *federationProvider) VerifyIDToken(ctx context.Context, idToken string) (*entity.FederatedIdentity, error) {
	claims, err := parseIDToken(idToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ID token")
	}

	if err := p.verifyTokenClaims(claims); err != nil {
		return nil, errors.Wrap(err, "token verification failed")
	}

	return &entity.FederatedIdentity{
		Provider:    entity.ProviderTypeGoogle,
		ProviderID:  claims.Sub,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}

// parseIDToken decodes the JWT payload and extracts claims.
func parseIDToken(token string) (*idTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid JWT format")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode token payload")
	}

	var claims idTokenClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token claims")
	}

	return &claims, nil
}

// verifyTokenClaims verifies issuer, audience, expiry and email status.
func (p *federationProvider) verifyTokenClaims(claims *idTokenClaims) error {
	if claims.Iss != "https://accounts.google.com" && claims.Iss != "accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", claims.Iss)
	}

	if claims.Aud != p.clientID {
		return errors.Errorf("invalid audience: expected %s, got %s", p.clientID, claims.Aud)
	}

	now := time.Now().Unix()
	if claims.Exp < now {
		return errors.Errorf("token expired: expired at %d, current time %d", claims.Exp, now)
	}

	if !claims.EmailVerified {
		return errors.New("email not verified")
	}

	if claims.Email == "" {
		return errors.New("token is missing the email attribute")
	}

	return nil
}
