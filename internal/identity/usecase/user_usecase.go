package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	"github.com/allisson/credvault/internal/identity/service"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// userUseCase implements the UserUseCase interface.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	privilegeRepo  PrivilegeRepository
	assignmentRepo AssignmentRepository
	secretLister   SecretLister
	password       service.PasswordService
	token          service.TokenService
}

// NewUserUseCase creates a new user administration use case instance.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	privilegeRepo PrivilegeRepository,
	assignmentRepo AssignmentRepository,
	secretLister SecretLister,
	password service.PasswordService,
	token service.TokenService,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		privilegeRepo:  privilegeRepo,
		assignmentRepo: assignmentRepo,
		secretLister:   secretLister,
		password:       password,
		token:          token,
	}
}

// Create provisions a user with admin flag, privilege, and an initial
// assignment set, all inside one transaction. The plain bearer token is
// returned alongside the user and is not recoverable afterwards.
func (u *userUseCase) Create(ctx context.Context, input CreateUserInput) (*identityDomain.User, string, error) {
	if input.Password != input.PasswordConfirmation {
		return nil, "", identityDomain.ErrPasswordMismatch
	}

	passwordHash, err := u.password.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	plainToken, tokenHash, err := u.token.Generate()
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &identityDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		TokenHash:    tokenHash,
		IsAdmin:      input.IsAdmin,
		PrivilegeID:  input.PrivilegeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if input.PrivilegeID != nil {
			privilege, err := u.privilegeRepo.Get(txCtx, *input.PrivilegeID)
			if err != nil {
				return err
			}
			user.Privilege = privilege
		}

		secrets, err := u.resolveSecrets(txCtx, input.SecretIDs)
		if err != nil {
			return err
		}

		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		if len(secrets) == 0 {
			return nil
		}

		assignments := make([]*identityDomain.Assignment, 0, len(secrets))
		for _, secret := range secrets {
			assignments = append(assignments, &identityDomain.Assignment{
				UserID:     user.ID,
				SecretID:   secret.ID,
				AssignedAt: now,
			})
		}
		if err := u.assignmentRepo.CreateBatch(txCtx, assignments); err != nil {
			return err
		}
		user.Secrets = secrets
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return user, plainToken, nil
}

// Get retrieves a user with their privilege and assigned system passwords
// embedded.
func (u *userUseCase) Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	user, err := u.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.PrivilegeID != nil {
		privilege, err := u.privilegeRepo.Get(ctx, *user.PrivilegeID)
		if err != nil {
			return nil, err
		}
		user.Privilege = privilege
	}

	if err := u.attachSecrets(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List retrieves users ordered by creation time.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// Update applies a partial update. A supplied password is confirmation
// checked and re-hashed; a supplied assignment set is reconciled against the
// current one. Everything runs in one transaction.
func (u *userUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateUserInput,
) (*identityDomain.User, error) {
	if input.Password != nil {
		if input.PasswordConfirmation == nil || *input.Password != *input.PasswordConfirmation {
			return nil, identityDomain.ErrPasswordMismatch
		}
	}

	var user *identityDomain.User

	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Password != nil {
			hash, err := u.password.Hash(*input.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if input.IsAdmin != nil {
			user.IsAdmin = *input.IsAdmin
		}
		if input.PrivilegeID != nil {
			if _, err := u.privilegeRepo.Get(txCtx, *input.PrivilegeID); err != nil {
				return err
			}
			user.PrivilegeID = input.PrivilegeID
		}
		user.UpdatedAt = time.Now().UTC()

		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		if input.SecretIDs != nil {
			secrets, err := u.reconcileAssignments(txCtx, id, *input.SecretIDs)
			if err != nil {
				return err
			}
			user.Secrets = secrets
			return nil
		}
		return u.attachSecrets(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user and their assignment rows in one transaction.
func (u *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := u.userRepo.Get(txCtx, id); err != nil {
			return err
		}

		if err := u.assignmentRepo.DeleteByUser(txCtx, id); err != nil {
			return err
		}

		return u.userRepo.Delete(txCtx, id)
	})
}

// reconcileAssignments moves the user's assignment set to exactly target:
// pairs missing from the store are inserted with a fresh timestamp, pairs
// absent from target are removed, and pairs present in both keep their
// original AssignedAt. It returns the resolved target secrets.
func (u *userUseCase) reconcileAssignments(
	ctx context.Context,
	userID uuid.UUID,
	target []uuid.UUID,
) ([]*vaultDomain.Secret, error) {
	secrets, err := u.resolveSecrets(ctx, target)
	if err != nil {
		return nil, err
	}

	current, err := u.assignmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	currentSet := make(map[uuid.UUID]bool, len(current))
	for _, assignment := range current {
		currentSet[assignment.SecretID] = true
	}
	targetSet := make(map[uuid.UUID]bool, len(secrets))
	for _, secret := range secrets {
		targetSet[secret.ID] = true
	}

	now := time.Now().UTC()
	var toAdd []*identityDomain.Assignment
	for _, secret := range secrets {
		if !currentSet[secret.ID] {
			toAdd = append(toAdd, &identityDomain.Assignment{
				UserID:     userID,
				SecretID:   secret.ID,
				AssignedAt: now,
			})
		}
	}
	if len(toAdd) > 0 {
		if err := u.assignmentRepo.CreateBatch(ctx, toAdd); err != nil {
			return nil, err
		}
	}

	for _, assignment := range current {
		if !targetSet[assignment.SecretID] {
			if err := u.assignmentRepo.Delete(ctx, userID, assignment.SecretID); err != nil {
				return nil, err
			}
		}
	}

	return secrets, nil
}

// attachSecrets embeds the user's assigned system passwords.
func (u *userUseCase) attachSecrets(ctx context.Context, user *identityDomain.User) error {
	assignments, err := u.assignmentRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.SecretID)
	}
	secrets, err := u.secretLister.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	user.Secrets = secrets
	return nil
}

// resolveSecrets verifies every id resolves to a stored system password and
// returns the resolved records. Repeated ids collapse to a single entry,
// keeping the order of first occurrence.
func (u *userUseCase) resolveSecrets(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Secret, error) {
	unique := dedupeSecretIDs(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	secrets, err := u.secretLister.ListByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(secrets) != len(unique) {
		return nil, identityDomain.ErrUnknownSecret
	}
	return secrets, nil
}

func dedupeSecretIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
