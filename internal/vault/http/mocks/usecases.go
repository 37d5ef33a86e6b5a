// Package mocks provides test doubles for the vault use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// MockPolicyUseCase is a mock implementation of usecase.PolicyUseCase.
type MockPolicyUseCase struct {
	mock.Mock
}

func (m *MockPolicyUseCase) Create(ctx context.Context, input vaultUseCase.CreatePolicyInput) (*vaultDomain.Policy, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Policy), args.Error(1)
}

func (m *MockPolicyUseCase) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Policy), args.Error(1)
}

func (m *MockPolicyUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Policy, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Policy), args.Error(1)
}

func (m *MockPolicyUseCase) Update(ctx context.Context, id uuid.UUID, input vaultUseCase.UpdatePolicyInput) (*vaultDomain.Policy, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Policy), args.Error(1)
}

func (m *MockPolicyUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryUseCase is a mock implementation of usecase.CategoryUseCase.
type MockCategoryUseCase struct {
	mock.Mock
}

func (m *MockCategoryUseCase) Create(ctx context.Context, input vaultUseCase.CreateCategoryInput) (*vaultDomain.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Category, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Update(ctx context.Context, id uuid.UUID, input vaultUseCase.UpdateCategoryInput) (*vaultDomain.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSecretUseCase is a mock implementation of usecase.SecretUseCase.
type MockSecretUseCase struct {
	mock.Mock
}

func (m *MockSecretUseCase) Create(ctx context.Context, input vaultUseCase.CreateSecretInput) (*vaultDomain.Secret, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) Update(ctx context.Context, id uuid.UUID, input vaultUseCase.UpdateSecretInput) (*vaultDomain.Secret, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
