// Package domain defines the core entities of the credential vault: password
// policies, password categories, and the system passwords they govern.
package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Policy is a named password complexity rule referenced by categories.
type Policy struct {
	// ID is the unique identifier for the policy.
	ID uuid.UUID `json:"id"`
	// Name is the globally unique policy name.
	Name string `json:"name"`
	// Description is shown to callers as guidance when a password is rejected.
	Description string `json:"description,omitempty"`
	// RegexPattern is the complexity rule. It is evaluated as an unanchored
	// partial match: "[0-9]" accepts any password containing a digit anywhere.
	RegexPattern string `json:"regex_pattern"`
	// Expiration is the advisory number of days until passwords under this
	// policy should be rotated. Nil means no expiration. Not enforced by any
	// scheduled process.
	Expiration *int `json:"expiration,omitempty"`
	// Categories holds the categories bound to this policy, populated on
	// detail fetches.
	Categories []*Category `json:"categories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AllowsPassword reports whether plaintext satisfies the policy pattern.
// An empty pattern accepts any password. The pattern is deliberately not
// anchored with ^ or $.
func (p *Policy) AllowsPassword(plaintext string) (bool, error) {
	if p.RegexPattern == "" {
		return true, nil
	}

	re, err := regexp.Compile(p.RegexPattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(plaintext), nil
}
