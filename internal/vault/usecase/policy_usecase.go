package usecase

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// policyUseCase implements the PolicyUseCase interface.
type policyUseCase struct {
	policyRepo   PolicyRepository
	categoryRepo CategoryRepository
}

// NewPolicyUseCase creates a new policy use case instance.
func NewPolicyUseCase(policyRepo PolicyRepository, categoryRepo CategoryRepository) PolicyUseCase {
	return &policyUseCase{
		policyRepo:   policyRepo,
		categoryRepo: categoryRepo,
	}
}

// Create validates the regex pattern and persists a new policy.
func (p *policyUseCase) Create(ctx context.Context, input CreatePolicyInput) (*vaultDomain.Policy, error) {
	if err := checkPattern(input.RegexPattern); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	policy := &vaultDomain.Policy{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         input.Name,
		Description:  input.Description,
		RegexPattern: input.RegexPattern,
		Expiration:   input.Expiration,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}

	return policy, nil
}

// Get retrieves a policy with the categories that reference it.
func (p *policyUseCase) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Policy, error) {
	policy, err := p.policyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := p.categoryRepo.ListByPolicy(ctx, id)
	if err != nil {
		return nil, err
	}
	policy.Categories = categories

	return policy, nil
}

// List retrieves policies ordered by creation time.
func (p *policyUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Policy, error) {
	return p.policyRepo.List(ctx, offset, limit)
}

// Update applies a partial update to an existing policy. A changed pattern
// only affects passwords written after the update; stored hashes are never
// re-checked.
func (p *policyUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdatePolicyInput,
) (*vaultDomain.Policy, error) {
	policy, err := p.policyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		policy.Name = *input.Name
	}
	if input.Description != nil {
		policy.Description = *input.Description
	}
	if input.RegexPattern != nil {
		if err := checkPattern(*input.RegexPattern); err != nil {
			return nil, err
		}
		policy.RegexPattern = *input.RegexPattern
	}
	if input.Expiration != nil {
		policy.Expiration = input.Expiration
	}
	policy.UpdatedAt = time.Now().UTC()

	if err := p.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}

	return policy, nil
}

// Delete removes a policy. Policies still referenced by categories cannot be
// deleted; the repository surfaces that as ErrPolicyInUse.
func (p *policyUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return p.policyRepo.Delete(ctx, id)
}

// checkPattern ensures a pattern would compile at evaluation time. The empty
// pattern is valid and accepts every password.
func checkPattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid regex pattern: "+err.Error())
	}
	return nil
}
