// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"habitly/internal/domain/entity"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when no account matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when an insert violates the uniqueness
	// constraint on username or email. Callers racing on federated
	// account creation re-read on this error instead of failing.
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository defines the standard operations for account persistence.
type UserRepository interface {
	// Create persists a new account. A uniqueness violation on username
	// or email is reported as ErrDuplicateUser.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves an account by its login identifier.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves an account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByUsername reports whether the username is already taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByNickname reports whether the nickname is already taken.
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)

	// List returns all accounts, newest first.
	List(ctx context.Context) ([]*entity.User, error)
}
