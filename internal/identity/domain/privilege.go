package domain

import (
	"time"

	"github.com/google/uuid"
)

// Privilege is a named access tier users can be placed in. PrivID is the
// operator-facing numeric code; both it and the name are unique.
type Privilege struct {
	// ID is the unique identifier for the privilege.
	ID uuid.UUID `json:"id"`
	// PrivID is the unique numeric privilege code.
	PrivID int `json:"priv_id"`
	// Name is the unique privilege name.
	Name string `json:"name"`
	// Description is an optional free-text description.
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
