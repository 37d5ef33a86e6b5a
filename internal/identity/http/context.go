// Package http provides HTTP handlers and middleware for identity:
// registration, login, user and privilege administration, and the bearer
// token authentication gate.
package http

import (
	"context"

	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

// userKey is a context key type for storing authenticated users.
type userKey struct{}

// WithUser stores an authenticated user in the context. Called by the
// authentication middleware after successful token validation.
func WithUser(ctx context.Context, user *identityDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context. Returns
// (user, true) when present, or (nil, false) when no user was set.
func GetUser(ctx context.Context) (*identityDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*identityDomain.User)
	return user, ok
}
