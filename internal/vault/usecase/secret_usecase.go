package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// secretUseCase implements the SecretUseCase interface.
type secretUseCase struct {
	txManager      database.TxManager
	secretRepo     SecretRepository
	categoryRepo   CategoryRepository
	policyRepo     PolicyRepository
	assignmentRepo AssignmentRepository
	hasher         PasswordHasher
}

// NewSecretUseCase creates a new system password use case instance.
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	categoryRepo CategoryRepository,
	policyRepo PolicyRepository,
	assignmentRepo AssignmentRepository,
	hasher PasswordHasher,
) SecretUseCase {
	return &secretUseCase{
		txManager:      txManager,
		secretRepo:     secretRepo,
		categoryRepo:   categoryRepo,
		policyRepo:     policyRepo,
		assignmentRepo: assignmentRepo,
		hasher:         hasher,
	}
}

// Create validates the plaintext against the category's policy, hashes it,
// and persists the system password. The policy check and the write happen in
// one transaction so a concurrent policy change cannot slip between them.
func (s *secretUseCase) Create(ctx context.Context, input CreateSecretInput) (*vaultDomain.Secret, error) {
	var secret *vaultDomain.Secret

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.checkAgainstCategoryPolicy(txCtx, input.CategoryID, input.Password); err != nil {
			return err
		}

		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return apperrors.Wrap(err, "failed to hash password")
		}

		now := time.Now().UTC()
		secret = &vaultDomain.Secret{
			ID:           uuid.Must(uuid.NewV7()),
			Name:         input.Name,
			Description:  input.Description,
			PasswordHash: hash,
			CategoryID:   input.CategoryID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		return s.secretRepo.Create(txCtx, secret)
	})
	if err != nil {
		return nil, err
	}

	return secret, nil
}

// Get retrieves a system password with its category embedded.
func (s *secretUseCase) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error) {
	secret, err := s.secretRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Get(ctx, secret.CategoryID)
	if err != nil {
		return nil, err
	}
	secret.Category = category

	return secret, nil
}

// List retrieves system passwords ordered by creation time.
func (s *secretUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error) {
	return s.secretRepo.List(ctx, offset, limit)
}

// Update applies a partial update. A supplied plaintext is validated against
// the effective category's policy: the new category when the update moves the
// password, otherwise the current one. Moving a password between categories
// without supplying a plaintext does not re-validate the stored hash; the
// plaintext needed for that check no longer exists.
func (s *secretUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateSecretInput,
) (*vaultDomain.Secret, error) {
	var secret *vaultDomain.Secret

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		secret, err = s.secretRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			secret.Name = *input.Name
		}
		if input.Description != nil {
			secret.Description = *input.Description
		}
		if input.CategoryID != nil {
			if _, err := s.categoryRepo.Get(txCtx, *input.CategoryID); err != nil {
				return err
			}
			secret.CategoryID = *input.CategoryID
		}
		if input.Password != nil {
			if err := s.checkAgainstCategoryPolicy(txCtx, secret.CategoryID, *input.Password); err != nil {
				return err
			}
			hash, err := s.hasher.Hash(*input.Password)
			if err != nil {
				return apperrors.Wrap(err, "failed to hash password")
			}
			secret.PasswordHash = hash
		}
		secret.UpdatedAt = time.Now().UTC()

		return s.secretRepo.Update(txCtx, secret)
	})
	if err != nil {
		return nil, err
	}

	return secret, nil
}

// Delete removes a system password and its user assignments in one
// transaction.
func (s *secretUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.secretRepo.Get(txCtx, id); err != nil {
			return err
		}

		if err := s.assignmentRepo.DeleteBySecret(txCtx, id); err != nil {
			return err
		}

		return s.secretRepo.Delete(txCtx, id)
	})
}

// checkAgainstCategoryPolicy resolves the category's policy and evaluates the
// plaintext against it.
func (s *secretUseCase) checkAgainstCategoryPolicy(
	ctx context.Context,
	categoryID uuid.UUID,
	plaintext string,
) error {
	category, err := s.categoryRepo.Get(ctx, categoryID)
	if err != nil {
		return err
	}

	policy, err := s.policyRepo.Get(ctx, category.PolicyID)
	if err != nil {
		return err
	}

	ok, err := policy.AllowsPassword(plaintext)
	if err != nil {
		return apperrors.Wrap(err, "failed to evaluate policy pattern")
	}
	if !ok {
		return vaultDomain.NewPolicyViolationError(policy)
	}

	return nil
}
