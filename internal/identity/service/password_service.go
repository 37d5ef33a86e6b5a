// Package service provides identity services for password hashing and bearer
// token generation.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// PasswordService hashes and verifies login passwords.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService using Argon2id hashing. Uses
// the Interactive policy, sized for login-path latency.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		panic(err)
	}

	return &passwordService{hasher: hasher}
}

// Hash hashes a plain text password using Argon2id.
func (p *passwordService) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify performs a constant-time comparison between a plain password and
// its hash.
func (p *passwordService) Verify(password, hash string) bool {
	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}
