package service

import (
	"context"

	"habitly/internal/domain/entity"
)

// FederationProvider abstracts the handshake with an external identity
// provider. Both handshake styles exist because different entry points
// use them: browser redirects carry an authorization code, API clients
// send an ID token directly.
type FederationProvider interface {
	// BuildAuthorizationURL constructs the provider's authorization URL
	// with a state parameter for CSRF protection.
	BuildAuthorizationURL(state string) string

	// ValidateState validates and consumes a state parameter previously
	// issued by BuildAuthorizationURL.
	ValidateState(state string) bool

	// Exchange trades an authorization code for the provider's identity
	// claims. This is the only blocking network call in the subsystem.
	Exchange(ctx context.Context, code string) (*entity.FederatedIdentity, error)

	// VerifyIDToken verifies a provider-issued ID token and returns the
	// identity claims it carries.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.FederatedIdentity, error)

	// Provider returns the provider type this implementation handles.
	Provider() entity.ProviderType
}
