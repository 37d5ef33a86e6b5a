package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.Contains(t, hash, "argon2id")

	assert.True(t, svc.Verify("correct horse battery staple", hash))
	assert.False(t, svc.Verify("wrong password", hash))
	assert.False(t, svc.Verify("correct horse battery staple", "not-a-hash"))
}

func TestTokenService(t *testing.T) {
	svc := NewTokenService()

	plain, hash, err := svc.Generate()
	require.NoError(t, err)
	assert.NotEmpty(t, plain)
	assert.Len(t, hash, 64, "SHA-256 hex digest")
	assert.Equal(t, hash, svc.HashToken(plain))

	t.Run("TokensAreUnique", func(t *testing.T) {
		plain2, hash2, err := svc.Generate()
		require.NoError(t, err)
		assert.NotEqual(t, plain, plain2)
		assert.NotEqual(t, hash, hash2)
	})

	t.Run("HashIsDeterministic", func(t *testing.T) {
		assert.Equal(t, svc.HashToken("some-token"), svc.HashToken("some-token"))
		assert.NotEqual(t, svc.HashToken("some-token"), svc.HashToken("other-token"))
	})
}
