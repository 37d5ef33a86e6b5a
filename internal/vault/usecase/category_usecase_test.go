package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/credvault/internal/database/mocks"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultMocks "github.com/allisson/credvault/internal/vault/usecase/mocks"
)

func TestCategoryUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).Return(&vaultDomain.Policy{ID: policyID}, nil).Once()
		categoryRepo := new(vaultMocks.MockCategoryRepository)
		categoryRepo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(nil).Once()

		uc := NewCategoryUseCase(
			databaseMocks.PassthroughTxManager{},
			categoryRepo,
			policyRepo,
			new(vaultMocks.MockSecretRepository),
			new(vaultMocks.MockAssignmentRepository),
		)
		category, err := uc.Create(ctx, CreateCategoryInput{Name: "Databases", PolicyID: policyID})
		require.NoError(t, err)
		assert.Equal(t, policyID, category.PolicyID)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("MissingPolicyRejected", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).Return(nil, vaultDomain.ErrPolicyNotFound).Once()
		categoryRepo := new(vaultMocks.MockCategoryRepository)

		uc := NewCategoryUseCase(
			databaseMocks.PassthroughTxManager{},
			categoryRepo,
			policyRepo,
			new(vaultMocks.MockSecretRepository),
			new(vaultMocks.MockAssignmentRepository),
		)
		_, err := uc.Create(ctx, CreateCategoryInput{Name: "Databases", PolicyID: policyID})
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyNotFound)
		categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCategoryUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("EmbedsPolicyAndSecrets", func(t *testing.T) {
		policyID := uuid.Must(uuid.NewV7())
		categoryID := uuid.Must(uuid.NewV7())

		categoryRepo := new(vaultMocks.MockCategoryRepository)
		categoryRepo.On("Get", ctx, categoryID).
			Return(&vaultDomain.Category{ID: categoryID, PolicyID: policyID}, nil).Once()
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, policyID).
			Return(&vaultDomain.Policy{ID: policyID, Name: "Numbers"}, nil).Once()
		secretRepo := new(vaultMocks.MockSecretRepository)
		secretRepo.On("ListByCategory", ctx, categoryID).
			Return([]*vaultDomain.Secret{{ID: uuid.Must(uuid.NewV7()), Name: "prod-db"}}, nil).Once()

		uc := NewCategoryUseCase(
			databaseMocks.PassthroughTxManager{},
			categoryRepo,
			policyRepo,
			secretRepo,
			new(vaultMocks.MockAssignmentRepository),
		)
		category, err := uc.Get(ctx, categoryID)
		require.NoError(t, err)
		require.NotNil(t, category.Policy)
		assert.Equal(t, "Numbers", category.Policy.Name)
		require.Len(t, category.Secrets, 1)
	})
}

func TestCategoryUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PolicyChangeDoesNotTouchStoredPasswords", func(t *testing.T) {
		categoryID := uuid.Must(uuid.NewV7())
		oldPolicyID := uuid.Must(uuid.NewV7())
		newPolicyID := uuid.Must(uuid.NewV7())

		categoryRepo := new(vaultMocks.MockCategoryRepository)
		categoryRepo.On("Get", ctx, categoryID).
			Return(&vaultDomain.Category{ID: categoryID, PolicyID: oldPolicyID}, nil).Once()
		categoryRepo.On("Update", ctx, mock.AnythingOfType("*domain.Category")).Return(nil).Once()
		policyRepo := new(vaultMocks.MockPolicyRepository)
		policyRepo.On("Get", ctx, newPolicyID).Return(&vaultDomain.Policy{ID: newPolicyID}, nil).Once()
		secretRepo := new(vaultMocks.MockSecretRepository)

		uc := NewCategoryUseCase(
			databaseMocks.PassthroughTxManager{},
			categoryRepo,
			policyRepo,
			secretRepo,
			new(vaultMocks.MockAssignmentRepository),
		)
		category, err := uc.Update(ctx, categoryID, UpdateCategoryInput{PolicyID: &newPolicyID})
		require.NoError(t, err)
		assert.Equal(t, newPolicyID, category.PolicyID)
		secretRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCategoryUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesThroughAssignmentsAndSecrets", func(t *testing.T) {
		categoryID := uuid.Must(uuid.NewV7())
		secretA := uuid.Must(uuid.NewV7())
		secretB := uuid.Must(uuid.NewV7())

		secretRepo := new(vaultMocks.MockSecretRepository)
		secretRepo.On("ListByCategory", ctx, categoryID).
			Return([]*vaultDomain.Secret{{ID: secretA}, {ID: secretB}}, nil).Once()
		secretRepo.On("DeleteByCategory", ctx, categoryID).Return(nil).Once()
		assignmentRepo := new(vaultMocks.MockAssignmentRepository)
		assignmentRepo.On("DeleteBySecret", ctx, secretA).Return(nil).Once()
		assignmentRepo.On("DeleteBySecret", ctx, secretB).Return(nil).Once()
		categoryRepo := new(vaultMocks.MockCategoryRepository)
		categoryRepo.On("Delete", ctx, categoryID).Return(nil).Once()

		uc := NewCategoryUseCase(
			databaseMocks.PassthroughTxManager{},
			categoryRepo,
			new(vaultMocks.MockPolicyRepository),
			secretRepo,
			assignmentRepo,
		)
		err := uc.Delete(ctx, categoryID)
		require.NoError(t, err)
		secretRepo.AssertExpectations(t)
		assignmentRepo.AssertExpectations(t)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("MissingCategorySurfacesNotFound", func(t *testing.T) {
		categoryID := uuid.Must(uuid.NewV7())

		secretRepo := new(vaultMocks.MockSecretRepository)
		secretRepo.On("ListByCategory", ctx, categoryID).Return([]*vaultDomain.Secret{}, nil).Once()
		secretRepo.On("DeleteByCategory", ctx, categoryID).Return(nil).Once()
		categoryRepo := new(vaultMocks.MockCategoryRepository)
		categoryRepo.On("Delete", ctx, categoryID).Return(vaultDomain.ErrCategoryNotFound).Once()

		uc := NewCategoryUseCase(
			databaseMocks.PassthroughTxManager{},
			categoryRepo,
			new(vaultMocks.MockPolicyRepository),
			secretRepo,
			new(vaultMocks.MockAssignmentRepository),
		)
		err := uc.Delete(ctx, categoryID)
		assert.ErrorIs(t, err, vaultDomain.ErrCategoryNotFound)
	})
}
