package usecase

import (
	"context"

	"habitly/internal/domain/entity"
)

// SignupInput defines the data required to create a local account.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Nickname string
}

// SignupOutput returns the newly created account.
type SignupOutput struct {
	User *entity.User
}

// AccountUsecase defines the interface for account management operations.
type AccountUsecase interface {
	// Signup creates a local account with a bcrypt-hashed password.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// UsernameAvailable reports whether the username is free to register.
	UsernameAvailable(ctx context.Context, username string) (bool, error)

	// NicknameAvailable reports whether the nickname is free to register.
	NicknameAvailable(ctx context.Context, nickname string) (bool, error)

	// GetProfile loads the account behind an authenticated principal.
	GetProfile(ctx context.Context, username string) (*entity.User, error)

	// ListAccounts returns all accounts, newest first. Admin surface only.
	ListAccounts(ctx context.Context) ([]*entity.User, error)
}
