// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Identity fields (ID, Username) are
// immutable after creation; only the role may change, and only through
// administrative action outside this subsystem.
type User struct {
	ID           uuid.UUID    // The unique identifier for the account.
	Username     string       // The login identifier. For federated accounts this is the provider email.
	Email        string       // The account's contact email.
	Nickname     string       // The display name shown to other users.
	PasswordHash string       // bcrypt hash of the password. Empty for federated accounts, which have no password login path.
	Role         Role         // The account's authorization role.
	Provider     ProviderType // How the account was created: local signup or an external identity provider.
	CreatedAt    time.Time    // Timestamp of account creation.
	UpdatedAt    time.Time    // Timestamp of the last modification.
}

// IsFederated reports whether the account was created through an
// external identity provider and therefore has no local password.
func (u *User) IsFederated() bool {
	return u.Provider != ProviderTypeLocal
}

// Principal is the authenticated identity attached to a request after
// the access gate has verified its token. It carries exactly what the
// token claims carry.
type Principal struct {
	Username string
	Role     Role
}
