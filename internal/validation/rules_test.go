package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/credvault/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("NilReturnsNil", func(t *testing.T) {
		assert.Nil(t, WrapValidationError(nil))
	})

	t.Run("WrapsAsInvalidInput", func(t *testing.T) {
		err := WrapValidationError(apperrors.New("name: must not be blank"))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "must not be blank")
	})
}

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.io",
	}
	for _, email := range valid {
		assert.NoError(t, Email.Validate(email), email)
	}

	invalid := []string{
		"not-an-email",
		"@example.com",
		"user@",
		"user@example",
		"user example@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, Email.Validate(email), email)
	}
}

func TestUsername(t *testing.T) {
	valid := []string{"alice", "bob_2", "carol-admin", "D4VE"}
	for _, username := range valid {
		assert.NoError(t, Username.Validate(username), username)
	}

	invalid := []string{"with space", "dot.name", "ünïcode", "semi;colon", ""}
	for _, username := range invalid {
		assert.Error(t, Username.Validate(username), username)
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate(""))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate("\t\n"))
}

func TestValidRegex(t *testing.T) {
	assert.NoError(t, ValidRegex.Validate("[0-9]"))
	assert.NoError(t, ValidRegex.Validate(`^(?i)abc.*$`))
	assert.NoError(t, ValidRegex.Validate(""))
	assert.Error(t, ValidRegex.Validate("[0-9"))
	assert.Error(t, ValidRegex.Validate("(unclosed"))
}
