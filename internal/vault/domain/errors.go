package domain

import (
	"fmt"

	"github.com/allisson/credvault/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrPolicyNotFound indicates the referenced password policy does not exist.
	ErrPolicyNotFound = errors.Wrap(errors.ErrNotFound, "password policy not found")

	// ErrCategoryNotFound indicates the referenced category does not exist.
	ErrCategoryNotFound = errors.Wrap(errors.ErrNotFound, "password category not found")

	// ErrSecretNotFound indicates the system password does not exist.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "system password not found")

	// ErrPolicyNameTaken indicates a policy with the same name already exists.
	ErrPolicyNameTaken = errors.Wrap(errors.ErrConflict, "policy name already exists")

	// ErrCategoryNameTaken indicates a category with the same name already exists.
	ErrCategoryNameTaken = errors.Wrap(errors.ErrConflict, "category name already exists")

	// ErrPolicyInUse indicates the policy is still referenced by categories
	// and cannot be deleted.
	ErrPolicyInUse = errors.Wrap(errors.ErrConflict, "policy is referenced by one or more categories")
)

// NewPolicyViolationError builds the error returned when a candidate password
// fails its category's policy pattern. The message carries the policy name
// and its human-readable description as guidance.
func NewPolicyViolationError(policy *Policy) error {
	msg := fmt.Sprintf("password does not meet the requirements of policy %q", policy.Name)
	if policy.Description != "" {
		msg = fmt.Sprintf("%s: %s", msg, policy.Description)
	}
	return errors.Wrap(errors.ErrPolicyViolation, msg)
}
