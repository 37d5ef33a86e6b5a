// Package errors provides the standardized error taxonomy shared by all
// domain modules. Use cases return these sentinel errors (usually wrapped with
// context) and the HTTP layer maps them to status codes; driver-level detail
// stays in the logs and is never echoed to callers.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across domain modules.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data, such as a duplicate
	// unique key or a foreign key constraint rejected by the store.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPolicyViolation indicates a candidate password failed its category's
	// password policy. The wrapped message carries the policy name and
	// description as guidance for the caller.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrInvalidCredentials indicates a login or token authentication failure.
	// It is deliberately generic: the same error is returned whether the
	// identity does not exist or the password was wrong.
	ErrInvalidCredentials = errors.New("credentials incorrect")

	// ErrUnauthorized indicates the request lacks valid authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user lacks permission.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the chain, so
// errors.Is checks against the sentinels above keep working at outer layers.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
