// Package mocks provides test doubles for the identity use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
)

// MockAuthUseCase is a mock implementation of usecase.AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input identityUseCase.RegisterInput) (*identityDomain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*identityDomain.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, credential, password string) (*identityDomain.User, string, error) {
	args := m.Called(ctx, credential, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*identityDomain.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, tokenHash string) (*identityDomain.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// MockUserUseCase is a mock implementation of usecase.UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Create(ctx context.Context, input identityUseCase.CreateUserInput) (*identityDomain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*identityDomain.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.User), args.Error(1)
}

func (m *MockUserUseCase) Update(ctx context.Context, id uuid.UUID, input identityUseCase.UpdateUserInput) (*identityDomain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

func (m *MockUserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPrivilegeUseCase is a mock implementation of usecase.PrivilegeUseCase.
type MockPrivilegeUseCase struct {
	mock.Mock
}

func (m *MockPrivilegeUseCase) Create(ctx context.Context, input identityUseCase.CreatePrivilegeInput) (*identityDomain.Privilege, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Privilege), args.Error(1)
}

func (m *MockPrivilegeUseCase) Get(ctx context.Context, id uuid.UUID) (*identityDomain.Privilege, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Privilege), args.Error(1)
}

func (m *MockPrivilegeUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.Privilege, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.Privilege), args.Error(1)
}

func (m *MockPrivilegeUseCase) Update(ctx context.Context, id uuid.UUID, input identityUseCase.UpdatePrivilegeInput) (*identityDomain.Privilege, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Privilege), args.Error(1)
}

func (m *MockPrivilegeUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
