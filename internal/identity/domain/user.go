// Package domain defines the identity entities: users, privileges, and the
// assignment relation linking users to system passwords.
package domain

import (
	"time"

	"github.com/google/uuid"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// User is an operator account. Authentication is credential-based (username
// or email plus password) and session-less: each login issues an opaque
// bearer token whose hash replaces the previous one, so at most one token is
// valid per user at any time.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `json:"id"`
	// Username is the globally unique login name.
	Username string `json:"username"`
	// Email is the globally unique email address.
	Email string `json:"email"`
	// PasswordHash is the Argon2id hash of the login password. Never
	// serialized.
	PasswordHash string `json:"-"`
	// TokenHash is the SHA-256 hex digest of the current bearer token, or
	// empty when no token has been issued. Never serialized.
	TokenHash string `json:"-"`
	// IsAdmin grants access to the administration endpoints.
	IsAdmin bool `json:"is_admin"`
	// PrivilegeID references the user's privilege, if any.
	PrivilegeID *uuid.UUID `json:"privilege_id,omitempty"`
	// Privilege is the resolved privilege, populated on detail fetches.
	Privilege *Privilege `json:"privilege,omitempty"`
	// Secrets holds the system passwords assigned to this user, populated on
	// detail fetches.
	Secrets []*vaultDomain.Secret `json:"system_passwords,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
