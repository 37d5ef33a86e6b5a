package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/credvault/internal/identity/domain"
	"github.com/allisson/credvault/internal/metrics"
)

const metricsDomain = "identity"

// recordMetrics emits the operation counter and duration histogram for a
// finished identity operation.
func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *authUseCaseWithMetrics) Register(
	ctx context.Context,
	input RegisterInput,
) (*identityDomain.User, string, error) {
	start := time.Now()
	user, token, err := a.next.Register(ctx, input)
	recordMetrics(ctx, a.metrics, "register", start, err)
	return user, token, err
}

func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	credential, password string,
) (*identityDomain.User, string, error) {
	start := time.Now()
	user, token, err := a.next.Login(ctx, credential, password)
	recordMetrics(ctx, a.metrics, "login", start, err)
	return user, token, err
}

func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := a.next.Authenticate(ctx, tokenHash)
	recordMetrics(ctx, a.metrics, "authenticate", start, err)
	return user, err
}

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{next: useCase, metrics: m}
}

func (u *userUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateUserInput,
) (*identityDomain.User, string, error) {
	start := time.Now()
	user, token, err := u.next.Create(ctx, input)
	recordMetrics(ctx, u.metrics, "user_create", start, err)
	return user, token, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	recordMetrics(ctx, u.metrics, "user_get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	recordMetrics(ctx, u.metrics, "user_list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateUserInput,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, input)
	recordMetrics(ctx, u.metrics, "user_update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	recordMetrics(ctx, u.metrics, "user_delete", start, err)
	return err
}
