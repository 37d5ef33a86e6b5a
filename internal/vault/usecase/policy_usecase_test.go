package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultMocks "github.com/allisson/credvault/internal/vault/usecase/mocks"
)

func TestPolicyUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Create", ctx, mock.AnythingOfType("*domain.Policy")).Return(nil).Once()

		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		policy, err := uc.Create(ctx, CreatePolicyInput{
			Name:         "Numbers",
			Description:  "Password must contain at least one digit.",
			RegexPattern: "[0-9]",
		})
		require.NoError(t, err)
		assert.Equal(t, "Numbers", policy.Name)
		assert.NotEqual(t, uuid.Nil, policy.ID)
		assert.False(t, policy.CreatedAt.IsZero())
		policyRepo.AssertExpectations(t)
	})

	t.Run("InvalidPatternRejectedBeforeWrite", func(t *testing.T) {
		policyRepo := new(vaultMocks.MockPolicyRepository)

		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		_, err := uc.Create(ctx, CreatePolicyInput{Name: "Broken", RegexPattern: "[0-9"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		policyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmptyPatternIsValid", func(t *testing.T) {
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Create", ctx, mock.AnythingOfType("*domain.Policy")).Return(nil).Once()

		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		policy, err := uc.Create(ctx, CreatePolicyInput{Name: "AcceptAll"})
		require.NoError(t, err)
		assert.Empty(t, policy.RegexPattern)
	})
}

func TestPolicyUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("EmbedsReferencingCategories", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		policy := &vaultDomain.Policy{ID: policyID, Name: "Numbers"}
		categories := []*vaultDomain.Category{
			{ID: uuid.Must(uuid.NewV7()), Name: "Databases", PolicyID: policyID},
		}

		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).Return(policy, nil).Once()
		categoryRepo := new(vaultMocks.MockCategoryRepository)
		categoryRepo.On("ListByPolicy", ctx, policyID).Return(categories, nil).Once()

		uc := NewPolicyUseCase(policyRepo, categoryRepo)
		got, err := uc.Get(ctx, policyID)
		require.NoError(t, err)
		require.Len(t, got.Categories, 1)
		assert.Equal(t, "Databases", got.Categories[0].Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).Return(nil, vaultDomain.ErrPolicyNotFound).Once()

		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		_, err := uc.Get(ctx, policyID)
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyNotFound)
	})
}

func TestPolicyUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdateLeavesOtherFieldsAlone", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		existing := &vaultDomain.Policy{
			ID:           policyID,
			Name:         "Numbers",
			Description:  "needs a digit",
			RegexPattern: "[0-9]",
			CreatedAt:    time.Now().UTC().Add(-time.Hour),
		}

		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).Return(existing, nil).Once()
		policyRepo.On("Update", ctx, mock.AnythingOfType("*domain.Policy")).Return(nil).Once()

		newName := "Digits"
		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		updated, err := uc.Update(ctx, policyID, UpdatePolicyInput{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Digits", updated.Name)
		assert.Equal(t, "[0-9]", updated.RegexPattern)
		assert.Equal(t, "needs a digit", updated.Description)
	})

	t.Run("InvalidNewPatternRejected", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).Return(&vaultDomain.Policy{ID: policyID}, nil).Once()

		badPattern := "(unclosed"
		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		_, err := uc.Update(ctx, policyID, UpdatePolicyInput{RegexPattern: &badPattern})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		policyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPolicyUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("ReferencedPolicyCannotBeDeleted", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Delete", ctx, policyID).Return(vaultDomain.ErrPolicyInUse).Once()

		uc := NewPolicyUseCase(policyRepo, new(vaultMocks.MockCategoryRepository))
		err := uc.Delete(ctx, policyID)
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyInUse)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})
}
