// Package validation provides custom validation rules shared by request DTOs
// and use case input checks.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/credvault/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// usernameRegex limits usernames to letters, numbers, underscores and hyphens
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// Username validates that a string contains only letters, numbers, underscores
// and hyphens.
var Username = validation.NewStringRuleWithError(
	func(s string) bool {
		return usernameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_username_charset",
		"can only contain letters, numbers, underscores, and hyphens",
	),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ValidRegex validates that a string compiles as a regular expression.
// Policy patterns are compiled at secret-write time, so a pattern that cannot
// compile must be rejected when the policy is stored, not when it is used.
var ValidRegex = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "" {
			return true
		}
		_, err := regexp.Compile(s)
		return err == nil
	},
	validation.NewError("validation_regex_pattern", "must be a valid regular expression"),
)
