// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"habitly/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the credentials pair for a local login, regardless
// of whether the request arrived as JSON or form fields.
type LoginInput struct {
	Username string
	Password string
}

// ReissueInput carries the refresh token presented for an access token reissue.
type ReissueInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful authentication.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	Role         entity.Role
	Username     string
}

// ReissueOutput returns the freshly minted access token. The refresh
// token is deliberately absent because it is never rotated.
type ReissueOutput struct {
	AccessToken string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login verifies a local credentials pair and mints both tokens.
	// Every failure surfaces the same invalid-credentials error so the
	// response cannot reveal whether the username exists.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Reissue mints a new access token from a valid refresh token.
	// The refresh token itself remains unchanged.
	Reissue(ctx context.Context, input *ReissueInput) (*ReissueOutput, error)

	// FederatedExchange completes the browser authorization-code flow:
	// code exchange, identity claims, find-or-create, token minting.
	FederatedExchange(ctx context.Context, code string) (*LoginOutput, error)

	// FederatedIDTokenLogin completes the API-style flow from a
	// provider-issued ID token instead of an authorization code.
	FederatedIDTokenLogin(ctx context.Context, idToken string) (*LoginOutput, error)
}
