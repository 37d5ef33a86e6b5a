package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// TokenService generates opaque bearer tokens and derives the digest stored
// in their place. Only the digest ever touches the database; clients see the
// plain token exactly once.
type TokenService interface {
	Generate() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
}

// tokenService implements TokenService with random tokens and SHA-256
// digests.
type tokenService struct{}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}

// Generate creates a cryptographically secure 32-byte random token. The
// plain form is base64url-encoded; the hash is its SHA-256 hex digest.
func (t *tokenService) Generate() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.URLEncoding.EncodeToString(randomBytes)
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken returns the SHA-256 hex digest of a plain token.
func (t *tokenService) HashToken(plainToken string) string {
	digest := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(digest[:])
}
