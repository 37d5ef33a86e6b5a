package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// categoryUseCase implements the CategoryUseCase interface.
type categoryUseCase struct {
	txManager      database.TxManager
	categoryRepo   CategoryRepository
	policyRepo     PolicyRepository
	secretRepo     SecretRepository
	assignmentRepo AssignmentRepository
}

// NewCategoryUseCase creates a new category use case instance.
func NewCategoryUseCase(
	txManager database.TxManager,
	categoryRepo CategoryRepository,
	policyRepo PolicyRepository,
	secretRepo SecretRepository,
	assignmentRepo AssignmentRepository,
) CategoryUseCase {
	return &categoryUseCase{
		txManager:      txManager,
		categoryRepo:   categoryRepo,
		policyRepo:     policyRepo,
		secretRepo:     secretRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Create persists a new category after checking the referenced policy exists.
func (c *categoryUseCase) Create(
	ctx context.Context,
	input CreateCategoryInput,
) (*vaultDomain.Category, error) {
	if _, err := c.policyRepo.Get(ctx, input.PolicyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &vaultDomain.Category{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        input.Name,
		Description: input.Description,
		PolicyID:    input.PolicyID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Get retrieves a category with its policy and system passwords embedded.
func (c *categoryUseCase) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error) {
	category, err := c.categoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	policy, err := c.policyRepo.Get(ctx, category.PolicyID)
	if err != nil {
		return nil, err
	}
	category.Policy = policy

	secrets, err := c.secretRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Secrets = secrets

	return category, nil
}

// List retrieves categories ordered by creation time.
func (c *categoryUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Category, error) {
	return c.categoryRepo.List(ctx, offset, limit)
}

// Update applies a partial update. A changed policy reference is checked for
// existence, but stored passwords are not re-validated against the new
// policy; the policy applies only to subsequent writes.
func (c *categoryUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateCategoryInput,
) (*vaultDomain.Category, error) {
	category, err := c.categoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.PolicyID != nil {
		if _, err := c.policyRepo.Get(ctx, *input.PolicyID); err != nil {
			return nil, err
		}
		category.PolicyID = *input.PolicyID
	}
	category.UpdatedAt = time.Now().UTC()

	if err := c.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category and everything hanging off it in one
// transaction: assignment rows for each owned system password, the system
// passwords themselves, then the category row.
func (c *categoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		secrets, err := c.secretRepo.ListByCategory(txCtx, id)
		if err != nil {
			return err
		}

		for _, secret := range secrets {
			if err := c.assignmentRepo.DeleteBySecret(txCtx, secret.ID); err != nil {
				return err
			}
		}

		if err := c.secretRepo.DeleteByCategory(txCtx, id); err != nil {
			return err
		}

		return c.categoryRepo.Delete(txCtx, id)
	})
}
