package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links a user to a system password they may use. The (user,
// secret) pair is unique; AssignedAt records when the link was first made
// and survives reconciliation of the rest of the set.
type Assignment struct {
	// UserID references the assigned user.
	UserID uuid.UUID `json:"user_id"`
	// SecretID references the assigned system password.
	SecretID uuid.UUID `json:"system_password_id"`
	// AssignedAt records when the assignment was created.
	AssignedAt time.Time `json:"assigned_at"`
}
