package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Identity-specific error definitions.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrPrivilegeNotFound indicates the referenced privilege does not exist.
	ErrPrivilegeNotFound = errors.Wrap(errors.ErrNotFound, "privilege not found")

	// ErrUsernameTaken indicates another user already holds the username.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrEmailTaken indicates another user already holds the email address.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already exists")

	// ErrPrivilegeTaken indicates a privilege with the same name or numeric
	// code already exists.
	ErrPrivilegeTaken = errors.Wrap(errors.ErrConflict, "privilege name or code already exists")

	// ErrPasswordMismatch indicates the password confirmation did not match.
	ErrPasswordMismatch = errors.Wrap(errors.ErrInvalidInput, "password confirmation does not match")

	// ErrUnknownSecret indicates an assignment references a system password
	// that does not exist.
	ErrUnknownSecret = errors.Wrap(errors.ErrInvalidInput, "assigned system password does not exist")
)
