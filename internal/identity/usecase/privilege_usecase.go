package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

// privilegeUseCase implements the PrivilegeUseCase interface.
type privilegeUseCase struct {
	privilegeRepo PrivilegeRepository
}

// NewPrivilegeUseCase creates a new privilege use case instance.
func NewPrivilegeUseCase(privilegeRepo PrivilegeRepository) PrivilegeUseCase {
	return &privilegeUseCase{privilegeRepo: privilegeRepo}
}

// Create persists a new privilege. Name and numeric code collisions surface
// as conflicts from the repository.
func (p *privilegeUseCase) Create(
	ctx context.Context,
	input CreatePrivilegeInput,
) (*identityDomain.Privilege, error) {
	now := time.Now().UTC()
	privilege := &identityDomain.Privilege{
		ID:          uuid.Must(uuid.NewV7()),
		PrivID:      input.PrivID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.privilegeRepo.Create(ctx, privilege); err != nil {
		return nil, err
	}

	return privilege, nil
}

// Get retrieves a privilege by ID.
func (p *privilegeUseCase) Get(ctx context.Context, id uuid.UUID) (*identityDomain.Privilege, error) {
	return p.privilegeRepo.Get(ctx, id)
}

// List retrieves privileges ordered by numeric code.
func (p *privilegeUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.Privilege, error) {
	return p.privilegeRepo.List(ctx, offset, limit)
}

// Update applies a partial update to an existing privilege.
func (p *privilegeUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdatePrivilegeInput,
) (*identityDomain.Privilege, error) {
	privilege, err := p.privilegeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PrivID != nil {
		privilege.PrivID = *input.PrivID
	}
	if input.Name != nil {
		privilege.Name = *input.Name
	}
	if input.Description != nil {
		privilege.Description = *input.Description
	}
	privilege.UpdatedAt = time.Now().UTC()

	if err := p.privilegeRepo.Update(ctx, privilege); err != nil {
		return nil, err
	}

	return privilege, nil
}

// Delete removes a privilege. Users holding it keep working; the database
// clears their reference.
func (p *privilegeUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return p.privilegeRepo.Delete(ctx, id)
}
