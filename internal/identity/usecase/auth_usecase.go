package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/credvault/internal/errors"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	"github.com/allisson/credvault/internal/identity/service"
)

// authUseCase implements the AuthUseCase interface.
type authUseCase struct {
	userRepo UserRepository
	password service.PasswordService
	token    service.TokenService
}

// NewAuthUseCase creates a new auth use case instance.
func NewAuthUseCase(
	userRepo UserRepository,
	password service.PasswordService,
	token service.TokenService,
) AuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		password: password,
		token:    token,
	}
}

// Register creates a non-admin user and issues their first bearer token.
func (a *authUseCase) Register(
	ctx context.Context,
	input RegisterInput,
) (*identityDomain.User, string, error) {
	if input.Password != input.PasswordConfirmation {
		return nil, "", identityDomain.ErrPasswordMismatch
	}

	if err := a.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return nil, "", err
	}

	passwordHash, err := a.password.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	plainToken, tokenHash, err := a.token.Generate()
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
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	return user, plainToken, nil
}

// Login verifies the credential and password and rotates the user's token.
// Unknown identity and wrong password produce the same error so callers
// cannot probe for account existence.
func (a *authUseCase) Login(
	ctx context.Context,
	credential, password string,
) (*identityDomain.User, string, error) {
	user, err := a.lookup(ctx, credential)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !a.password.Verify(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := a.token.Generate()
	if err != nil {
		return nil, "", err
	}

	// Persisting the new digest supersedes the previous token.
	user.TokenHash = tokenHash
	user.UpdatedAt = time.Now().UTC()
	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	return user, plainToken, nil
}

// Authenticate resolves the user holding the given token digest.
func (a *authUseCase) Authenticate(ctx context.Context, tokenHash string) (*identityDomain.User, error) {
	// An empty digest would match users that never logged in.
	if tokenHash == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := a.userRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

// lookup resolves a login credential, trying username first and then email.
func (a *authUseCase) lookup(ctx context.Context, credential string) (*identityDomain.User, error) {
	user, err := a.userRepo.GetByUsername(ctx, credential)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return a.userRepo.GetByEmail(ctx, credential)
}

// checkAvailability pre-checks username and email uniqueness so registration
// reports which field collided. The database constraints still backstop
// concurrent registrations.
func (a *authUseCase) checkAvailability(ctx context.Context, username, email string) error {
	if _, err := a.userRepo.GetByUsername(ctx, username); err == nil {
		return identityDomain.ErrUsernameTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if _, err := a.userRepo.GetByEmail(ctx, email); err == nil {
		return identityDomain.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	return nil
}
