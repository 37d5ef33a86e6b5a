package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups system passwords under a single password policy. Every
// category references exactly one policy at all times; deleting a category
// deletes the system passwords it owns.
type Category struct {
	// ID is the unique identifier for the category.
	ID uuid.UUID `json:"id"`
	// Name is the globally unique category name.
	Name string `json:"name"`
	// Description is an optional free-text description.
	Description string `json:"description,omitempty"`
	// PolicyID references the policy governing passwords in this category.
	PolicyID uuid.UUID `json:"password_policy_id"`
	// Policy is the resolved policy, populated on fetches that embed it.
	Policy *Policy `json:"policy,omitempty"`
	// Secrets holds the system passwords in this category, populated on
	// detail fetches.
	Secrets []*Secret `json:"system_passwords,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
