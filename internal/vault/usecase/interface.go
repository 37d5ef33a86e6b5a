// Package usecase implements business logic orchestration for the credential
// vault. Use cases coordinate repositories, policy evaluation, and password
// hashing so that every stored system password satisfies its category's
// policy before it is hashed and persisted.
package usecase

import (
	"context"

	"github.com/google/uuid"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// PolicyRepository defines the interface for password policy persistence.
type PolicyRepository interface {
	Create(ctx context.Context, policy *vaultDomain.Policy) error
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Policy, error)
	GetByName(ctx context.Context, name string) (*vaultDomain.Policy, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Policy, error)
	Update(ctx context.Context, policy *vaultDomain.Policy) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the interface for password category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *vaultDomain.Category) error
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error)
	GetByName(ctx context.Context, name string) (*vaultDomain.Category, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Category, error)
	ListByPolicy(ctx context.Context, policyID uuid.UUID) ([]*vaultDomain.Category, error)
	Update(ctx context.Context, category *vaultDomain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SecretRepository defines the interface for system password persistence.
type SecretRepository interface {
	Create(ctx context.Context, secret *vaultDomain.Secret) error
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*vaultDomain.Secret, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Secret, error)
	Update(ctx context.Context, secret *vaultDomain.Secret) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) error
}

// AssignmentRepository is the slice of the user assignment store the vault
// needs: removing assignment rows when a system password or its category
// goes away.
type AssignmentRepository interface {
	DeleteBySecret(ctx context.Context, secretID uuid.UUID) error
}

// PasswordHasher produces storage-ready hashes from plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CreatePolicyInput carries the fields for creating a password policy.
type CreatePolicyInput struct {
	Name         string
	Description  string
	RegexPattern string
	Expiration   *int
}

// UpdatePolicyInput carries the fields for a partial policy update. Nil
// fields are left unchanged.
type UpdatePolicyInput struct {
	Name         *string
	Description  *string
	RegexPattern *string
	Expiration   *int
}

// CreateCategoryInput carries the fields for creating a password category.
type CreateCategoryInput struct {
	Name        string
	Description string
	PolicyID    uuid.UUID
}

// UpdateCategoryInput carries the fields for a partial category update. Nil
// fields are left unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	PolicyID    *uuid.UUID
}

// CreateSecretInput carries the fields for creating a system password. The
// plaintext password is validated against the category's policy and hashed
// before anything is written.
type CreateSecretInput struct {
	Name        string
	Description string
	Password    string
	CategoryID  uuid.UUID
}

// UpdateSecretInput carries the fields for a partial system password update.
// Nil fields are left unchanged. When Password is set it is validated against
// the effective category's policy: the new category when CategoryID is also
// set, otherwise the current one.
type UpdateSecretInput struct {
	Name        *string
	Description *string
	Password    *string
	CategoryID  *uuid.UUID
}

// PolicyUseCase defines the interface for password policy business logic.
type PolicyUseCase interface {
	Create(ctx context.Context, input CreatePolicyInput) (*vaultDomain.Policy, error)
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Policy, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Policy, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePolicyInput) (*vaultDomain.Policy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryUseCase defines the interface for password category business logic.
type CategoryUseCase interface {
	Create(ctx context.Context, input CreateCategoryInput) (*vaultDomain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*vaultDomain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SecretUseCase defines the interface for system password business logic.
type SecretUseCase interface {
	Create(ctx context.Context, input CreateSecretInput) (*vaultDomain.Secret, error)
	Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error)
	List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSecretInput) (*vaultDomain.Secret, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
