// Package usecase implements business logic orchestration for identity:
// registration, login and token authentication, user administration with
// assignment reconciliation, and privilege management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// UserRepository defines the interface for User persistence.
type UserRepository interface {
	Create(ctx context.Context, user *identityDomain.User) error
	Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*identityDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*identityDomain.User, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*identityDomain.User, error)
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)
	Update(ctx context.Context, user *identityDomain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrivilegeRepository defines the interface for Privilege persistence.
type PrivilegeRepository interface {
	Create(ctx context.Context, privilege *identityDomain.Privilege) error
	Get(ctx context.Context, id uuid.UUID) (*identityDomain.Privilege, error)
	List(ctx context.Context, offset, limit int) ([]*identityDomain.Privilege, error)
	Update(ctx context.Context, privilege *identityDomain.Privilege) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssignmentRepository defines the interface for the user ↔ system password
// assignment relation.
type AssignmentRepository interface {
	CreateBatch(ctx context.Context, assignments []*identityDomain.Assignment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*identityDomain.Assignment, error)
	ListBySecret(ctx context.Context, secretID uuid.UUID) ([]*identityDomain.Assignment, error)
	Delete(ctx context.Context, userID, secretID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteBySecret(ctx context.Context, secretID uuid.UUID) error
}

// SecretLister is the slice of the vault store identity needs: resolving
// assignment targets to confirm they exist and to embed them in responses.
type SecretLister interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Secret, error)
}

// RegisterInput carries the fields for self-service registration.
type RegisterInput struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// CreateUserInput carries the fields for admin user creation.
type CreateUserInput struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	IsAdmin              bool
	PrivilegeID          *uuid.UUID
	SecretIDs            []uuid.UUID
}

// UpdateUserInput carries the fields for a partial user update. Nil fields
// are left unchanged. A non-nil SecretIDs reconciles the user's assignments
// to exactly that set.
type UpdateUserInput struct {
	Username             *string
	Email                *string
	Password             *string
	PasswordConfirmation *string
	IsAdmin              *bool
	PrivilegeID          *uuid.UUID
	SecretIDs            *[]uuid.UUID
}

// CreatePrivilegeInput carries the fields for creating a privilege.
type CreatePrivilegeInput struct {
	PrivID      int
	Name        string
	Description string
}

// UpdatePrivilegeInput carries the fields for a partial privilege update.
type UpdatePrivilegeInput struct {
	PrivID      *int
	Name        *string
	Description *string
}

// AuthUseCase defines the interface for registration, login, and bearer
// token authentication.
type AuthUseCase interface {
	// Register creates a non-admin user and issues their first token. The
	// plain token is returned once and never stored.
	Register(ctx context.Context, input RegisterInput) (*identityDomain.User, string, error)
	// Login verifies a credential (username or email) and password and
	// rotates the user's token. The previous token stops working.
	Login(ctx context.Context, credential, password string) (*identityDomain.User, string, error)
	// Authenticate resolves the user holding the given token digest.
	Authenticate(ctx context.Context, tokenHash string) (*identityDomain.User, error)
}

// UserUseCase defines the interface for user administration.
type UserUseCase interface {
	// Create provisions a user and returns it together with the plain
	// bearer token, which is only available at creation time.
	Create(ctx context.Context, input CreateUserInput) (*identityDomain.User, string, error)
	Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error)
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*identityDomain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrivilegeUseCase defines the interface for privilege management.
type PrivilegeUseCase interface {
	Create(ctx context.Context, input CreatePrivilegeInput) (*identityDomain.Privilege, error)
	Get(ctx context.Context, id uuid.UUID) (*identityDomain.Privilege, error)
	List(ctx context.Context, offset, limit int) ([]*identityDomain.Privilege, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePrivilegeInput) (*identityDomain.Privilege, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
