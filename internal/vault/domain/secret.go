package domain

import (
	"time"

	"github.com/google/uuid"
)

// Secret is a system password: a shared credential for an external system.
// Only a one-way hash of the plaintext is ever stored; the plaintext must
// have matched the owning category's policy pattern at write time.
type Secret struct {
	// ID is the unique identifier for the system password.
	ID uuid.UUID `json:"id"`
	// Name identifies the external system. Not required to be unique.
	Name string `json:"name"`
	// Description is an optional free-text description.
	Description string `json:"description,omitempty"`
	// PasswordHash is the Argon2id hash of the plaintext. Never serialized.
	PasswordHash string `json:"-"`
	// CategoryID references the category that owns this system password.
	CategoryID uuid.UUID `json:"category_id"`
	// Category is the resolved category, populated on fetches that embed it.
	Category *Category `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
