package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/credvault/internal/database/mocks"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	identityMocks "github.com/allisson/credvault/internal/identity/usecase/mocks"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

type userUseCaseFixture struct {
	userRepo       *identityMocks.MockUserRepository
	privilegeRepo  *identityMocks.MockPrivilegeRepository
	assignmentRepo *identityMocks.MockAssignmentRepository
	secretLister   *identityMocks.MockSecretLister
	passwordSvc    *identityMocks.MockPasswordService
	tokenSvc       *identityMocks.MockTokenService
	uc             UserUseCase
}

func newUserUseCaseFixture() *userUseCaseFixture {
	f := &userUseCaseFixture{
		userRepo:       new(identityMocks.MockUserRepository),
		privilegeRepo:  new(identityMocks.MockPrivilegeRepository),
		assignmentRepo: new(identityMocks.MockAssignmentRepository),
		secretLister:   new(identityMocks.MockSecretLister),
		passwordSvc:    new(identityMocks.MockPasswordService),
		tokenSvc:       new(identityMocks.MockTokenService),
	}
	f.uc = NewUserUseCase(
		databaseMocks.PassthroughTxManager{},
		f.userRepo,
		f.privilegeRepo,
		f.assignmentRepo,
		f.secretLister,
		f.passwordSvc,
		f.tokenSvc,
	)
	return f
}

func secretsFor(ids ...uuid.UUID) []*vaultDomain.Secret {
	secrets := make([]*vaultDomain.Secret, 0, len(ids))
	for _, id := range ids {
		secrets = append(secrets, &vaultDomain.Secret{ID: id})
	}
	return secrets
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("WithInitialAssignments", func(t *testing.T) {
		f := newUserUseCaseFixture()
		secretA := uuid.Must(uuid.NewV7())
		secretB := uuid.Must(uuid.NewV7())

		f.passwordSvc.On("Hash", "hunter22-pass").Return("$argon2id$h", nil).Once()
		f.tokenSvc.On("Generate").Return("plain", "digest", nil).Once()
		f.secretLister.On("ListByIDs", ctx, []uuid.UUID{secretA, secretB}).
			Return(secretsFor(secretA, secretB), nil).Once()
		f.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		f.assignmentRepo.On("CreateBatch", ctx, mock.MatchedBy(func(as []*identityDomain.Assignment) bool {
			return len(as) == 2 && as[0].SecretID == secretA && as[1].SecretID == secretB
		})).Return(nil).Once()

		user, token, err := f.uc.Create(ctx, CreateUserInput{
			Username:             "bob",
			Email:                "bob@example.com",
			Password:             "hunter22-pass",
			PasswordConfirmation: "hunter22-pass",
			IsAdmin:              true,
			SecretIDs:            []uuid.UUID{secretA, secretB},
		})
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
		assert.Equal(t, "plain", token)
		require.Len(t, user.Secrets, 2)
		assert.Equal(t, secretA, user.Secrets[0].ID)
		assert.Equal(t, secretB, user.Secrets[1].ID)
		f.assignmentRepo.AssertExpectations(t)
	})

	t.Run("DuplicateSecretIDsCollapseToOneAssignment", func(t *testing.T) {
		f := newUserUseCaseFixture()
		secretA := uuid.Must(uuid.NewV7())

		f.passwordSvc.On("Hash", "hunter22-pass").Return("$argon2id$h", nil).Once()
		f.tokenSvc.On("Generate").Return("plain", "digest", nil).Once()
		f.secretLister.On("ListByIDs", ctx, []uuid.UUID{secretA}).
			Return(secretsFor(secretA), nil).Once()
		f.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		f.assignmentRepo.On("CreateBatch", ctx, mock.MatchedBy(func(as []*identityDomain.Assignment) bool {
			return len(as) == 1 && as[0].SecretID == secretA
		})).Return(nil).Once()

		user, _, err := f.uc.Create(ctx, CreateUserInput{
			Username:             "bob",
			Email:                "bob@example.com",
			Password:             "hunter22-pass",
			PasswordConfirmation: "hunter22-pass",
			SecretIDs:            []uuid.UUID{secretA, secretA},
		})
		require.NoError(t, err)
		require.Len(t, user.Secrets, 1)
		f.assignmentRepo.AssertExpectations(t)
	})

	t.Run("UnknownSecretAbortsEverything", func(t *testing.T) {
		f := newUserUseCaseFixture()
		ghost := uuid.Must(uuid.NewV7())

		f.passwordSvc.On("Hash", "hunter22-pass").Return("$argon2id$h", nil).Once()
		f.tokenSvc.On("Generate").Return("plain", "digest", nil).Once()
		f.secretLister.On("ListByIDs", ctx, []uuid.UUID{ghost}).
			Return([]*vaultDomain.Secret{}, nil).Once()

		_, _, err := f.uc.Create(ctx, CreateUserInput{
			Username:             "bob",
			Email:                "bob@example.com",
			Password:             "hunter22-pass",
			PasswordConfirmation: "hunter22-pass",
			SecretIDs:            []uuid.UUID{ghost},
		})
		assert.ErrorIs(t, err, identityDomain.ErrUnknownSecret)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingPrivilegeRejected", func(t *testing.T) {
		f := newUserUseCaseFixture()
		privilegeID := uuid.Must(uuid.NewV7())

		f.passwordSvc.On("Hash", "hunter22-pass").Return("$argon2id$h", nil).Once()
		f.tokenSvc.On("Generate").Return("plain", "digest", nil).Once()
		f.privilegeRepo.On("Get", ctx, privilegeID).
			Return(nil, identityDomain.ErrPrivilegeNotFound).Once()

		_, _, err := f.uc.Create(ctx, CreateUserInput{
			Username:             "bob",
			Email:                "bob@example.com",
			Password:             "hunter22-pass",
			PasswordConfirmation: "hunter22-pass",
			PrivilegeID:          &privilegeID,
		})
		assert.ErrorIs(t, err, identityDomain.ErrPrivilegeNotFound)
	})
}

func TestUserUseCase_Update_ReconcilesAssignments(t *testing.T) {
	ctx := context.Background()

	t.Run("SymmetricDifference", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())
		secret1 := uuid.Must(uuid.NewV7())
		secret2 := uuid.Must(uuid.NewV7())
		secret3 := uuid.Must(uuid.NewV7())
		secret4 := uuid.Must(uuid.NewV7())
		keptAt := time.Now().UTC().Add(-24 * time.Hour)

		f.userRepo.On("Get", ctx, userID).
			Return(&identityDomain.User{ID: userID, Username: "bob"}, nil).Once()
		f.userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		target := []uuid.UUID{secret2, secret3, secret4}
		f.secretLister.On("ListByIDs", ctx, target).
			Return(secretsFor(secret2, secret3, secret4), nil).Once()
		// Current set {1,2,3}; target {2,3,4}: only 4 is inserted, only 1
		// removed, 2 and 3 keep their original timestamps untouched.
		f.assignmentRepo.On("ListByUser", ctx, userID).Return([]*identityDomain.Assignment{
			{UserID: userID, SecretID: secret1, AssignedAt: keptAt},
			{UserID: userID, SecretID: secret2, AssignedAt: keptAt},
			{UserID: userID, SecretID: secret3, AssignedAt: keptAt},
		}, nil).Once()
		f.assignmentRepo.On("CreateBatch", ctx, mock.MatchedBy(func(as []*identityDomain.Assignment) bool {
			return len(as) == 1 && as[0].SecretID == secret4 && as[0].AssignedAt.After(keptAt)
		})).Return(nil).Once()
		f.assignmentRepo.On("Delete", ctx, userID, secret1).Return(nil).Once()

		user, err := f.uc.Update(ctx, userID, UpdateUserInput{SecretIDs: &target})
		require.NoError(t, err)
		require.Len(t, user.Secrets, 3)
		f.assignmentRepo.AssertExpectations(t)
		f.assignmentRepo.AssertNotCalled(t, "Delete", ctx, userID, secret2)
		f.assignmentRepo.AssertNotCalled(t, "Delete", ctx, userID, secret3)
	})

	t.Run("DuplicateTargetInsertsOnce", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())
		secret4 := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).
			Return(&identityDomain.User{ID: userID, Username: "bob"}, nil).Once()
		f.userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		f.secretLister.On("ListByIDs", ctx, []uuid.UUID{secret4}).
			Return(secretsFor(secret4), nil).Once()
		f.assignmentRepo.On("ListByUser", ctx, userID).
			Return([]*identityDomain.Assignment{}, nil).Once()
		f.assignmentRepo.On("CreateBatch", ctx, mock.MatchedBy(func(as []*identityDomain.Assignment) bool {
			return len(as) == 1 && as[0].SecretID == secret4
		})).Return(nil).Once()

		target := []uuid.UUID{secret4, secret4}
		user, err := f.uc.Update(ctx, userID, UpdateUserInput{SecretIDs: &target})
		require.NoError(t, err)
		require.Len(t, user.Secrets, 1)
		f.assignmentRepo.AssertExpectations(t)
	})

	t.Run("EmptyTargetRemovesEverything", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())
		secret1 := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).
			Return(&identityDomain.User{ID: userID}, nil).Once()
		f.userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		f.assignmentRepo.On("ListByUser", ctx, userID).Return([]*identityDomain.Assignment{
			{UserID: userID, SecretID: secret1},
		}, nil).Once()
		f.assignmentRepo.On("Delete", ctx, userID, secret1).Return(nil).Once()

		target := []uuid.UUID{}
		user, err := f.uc.Update(ctx, userID, UpdateUserInput{SecretIDs: &target})
		require.NoError(t, err)
		assert.Empty(t, user.Secrets)
		f.assignmentRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("NilSecretIDsLeavesAssignmentsAlone", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())
		secret1 := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).
			Return(&identityDomain.User{ID: userID, Username: "bob"}, nil).Once()
		f.userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		f.assignmentRepo.On("ListByUser", ctx, userID).Return([]*identityDomain.Assignment{
			{UserID: userID, SecretID: secret1},
		}, nil).Once()
		f.secretLister.On("ListByIDs", ctx, []uuid.UUID{secret1}).
			Return(secretsFor(secret1), nil).Once()

		newName := "robert"
		user, err := f.uc.Update(ctx, userID, UpdateUserInput{Username: &newName})
		require.NoError(t, err)
		assert.Equal(t, "robert", user.Username)
		require.Len(t, user.Secrets, 1)
		f.assignmentRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		f.assignmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Update_Password(t *testing.T) {
	ctx := context.Background()

	t.Run("RehashWithConfirmation", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).
			Return(&identityDomain.User{ID: userID, PasswordHash: "old"}, nil).Once()
		f.passwordSvc.On("Hash", "new-pass-123").Return("$argon2id$new", nil).Once()
		f.userRepo.On("Update", ctx, mock.MatchedBy(func(u *identityDomain.User) bool {
			return u.PasswordHash == "$argon2id$new"
		})).Return(nil).Once()
		f.assignmentRepo.On("ListByUser", ctx, userID).
			Return([]*identityDomain.Assignment{}, nil).Once()

		password := "new-pass-123"
		confirmation := "new-pass-123"
		_, err := f.uc.Update(ctx, userID, UpdateUserInput{
			Password:             &password,
			PasswordConfirmation: &confirmation,
		})
		require.NoError(t, err)
	})

	t.Run("MissingConfirmationRejected", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())

		password := "new-pass-123"
		_, err := f.uc.Update(ctx, userID, UpdateUserInput{Password: &password})
		assert.ErrorIs(t, err, identityDomain.ErrPasswordMismatch)
		f.userRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("EmbedsPrivilegeAndSecrets", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())
		privilegeID := uuid.Must(uuid.NewV7())
		secretID := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).
			Return(&identityDomain.User{ID: userID, PrivilegeID: &privilegeID}, nil).Once()
		f.privilegeRepo.On("Get", ctx, privilegeID).
			Return(&identityDomain.Privilege{ID: privilegeID, Name: "operators"}, nil).Once()
		f.assignmentRepo.On("ListByUser", ctx, userID).Return([]*identityDomain.Assignment{
			{UserID: userID, SecretID: secretID},
		}, nil).Once()
		f.secretLister.On("ListByIDs", ctx, []uuid.UUID{secretID}).
			Return(secretsFor(secretID), nil).Once()

		user, err := f.uc.Get(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, user.Privilege)
		assert.Equal(t, "operators", user.Privilege.Name)
		require.Len(t, user.Secrets, 1)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesAssignmentsFirst", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).Return(&identityDomain.User{ID: userID}, nil).Once()
		f.assignmentRepo.On("DeleteByUser", ctx, userID).Return(nil).Once()
		f.userRepo.On("Delete", ctx, userID).Return(nil).Once()

		err := f.uc.Delete(ctx, userID)
		require.NoError(t, err)
		f.assignmentRepo.AssertExpectations(t)
	})

	t.Run("MissingUserStopsBeforeDetach", func(t *testing.T) {
		f := newUserUseCaseFixture()
		userID := uuid.Must(uuid.NewV7())

		f.userRepo.On("Get", ctx, userID).Return(nil, identityDomain.ErrUserNotFound).Once()

		err := f.uc.Delete(ctx, userID)
		assert.ErrorIs(t, err, identityDomain.ErrUserNotFound)
		f.assignmentRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	})
}
