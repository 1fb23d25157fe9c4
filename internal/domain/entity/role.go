// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
// It is a closed set: values outside the declared constants are invalid.
type Role string

const (
	// RoleUser indicates a regular user role.
	RoleUser Role = "user"
	// RoleAdmin indicates an administrator role.
	RoleAdmin Role = "admin"
)

// roleWirePrefix is the fixed prefix used when a role is serialized
// into a token claim. It never appears in stored or in-memory roles.
const roleWirePrefix = "ROLE_"

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Wire serializes the role for token claims, e.g. "ROLE_USER".
// This is the single boundary between the typed role and its wire form.
func (r Role) Wire() string {
	switch r {
	case RoleAdmin:
		return roleWirePrefix + "ADMIN"
	default:
		return roleWirePrefix + "USER"
	}
}

// RoleFromWire parses a wire-form role claim back into a Role.
// Unknown values return false.
func RoleFromWire(s string) (Role, bool) {
	switch s {
	case roleWirePrefix + "USER":
		return RoleUser, true
	case roleWirePrefix + "ADMIN":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Satisfies reports whether this role meets a requirement for one of the
// given roles. An empty requirement set means any valid role satisfies it.
func (r Role) Satisfies(required []Role) bool {
	if len(required) == 0 {
		return r.IsValid()
	}
	for _, req := range required {
		if r == req {
			return true
		}
	}

	return false
}
