package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/metrics"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

const metricsDomain = "vault"

// recordMetrics emits the operation counter and duration histogram for a
// finished vault operation.
func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// policyUseCaseWithMetrics decorates PolicyUseCase with metrics instrumentation.
type policyUseCaseWithMetrics struct {
	next    PolicyUseCase
	metrics metrics.BusinessMetrics
}

// NewPolicyUseCaseWithMetrics wraps a PolicyUseCase with metrics recording.
func NewPolicyUseCaseWithMetrics(useCase PolicyUseCase, m metrics.BusinessMetrics) PolicyUseCase {
	return &policyUseCaseWithMetrics{next: useCase, metrics: m}
}

func (p *policyUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreatePolicyInput,
) (*vaultDomain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Create(ctx, input)
	recordMetrics(ctx, p.metrics, "policy_create", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Get(ctx, id)
	recordMetrics(ctx, p.metrics, "policy_get", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Policy, error) {
	start := time.Now()
	policies, err := p.next.List(ctx, offset, limit)
	recordMetrics(ctx, p.metrics, "policy_list", start, err)
	return policies, err
}

func (p *policyUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdatePolicyInput,
) (*vaultDomain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Update(ctx, id, input)
	recordMetrics(ctx, p.metrics, "policy_update", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, id)
	recordMetrics(ctx, p.metrics, "policy_delete", start, err)
	return err
}

// categoryUseCaseWithMetrics decorates CategoryUseCase with metrics instrumentation.
type categoryUseCaseWithMetrics struct {
	next    CategoryUseCase
	metrics metrics.BusinessMetrics
}

// NewCategoryUseCaseWithMetrics wraps a CategoryUseCase with metrics recording.
func NewCategoryUseCaseWithMetrics(useCase CategoryUseCase, m metrics.BusinessMetrics) CategoryUseCase {
	return &categoryUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *categoryUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateCategoryInput,
) (*vaultDomain.Category, error) {
	start := time.Now()
	category, err := c.next.Create(ctx, input)
	recordMetrics(ctx, c.metrics, "category_create", start, err)
	return category, err
}

func (c *categoryUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error) {
	start := time.Now()
	category, err := c.next.Get(ctx, id)
	recordMetrics(ctx, c.metrics, "category_get", start, err)
	return category, err
}

func (c *categoryUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*vaultDomain.Category, error) {
	start := time.Now()
	categories, err := c.next.List(ctx, offset, limit)
	recordMetrics(ctx, c.metrics, "category_list", start, err)
	return categories, err
}

func (c *categoryUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateCategoryInput,
) (*vaultDomain.Category, error) {
	start := time.Now()
	category, err := c.next.Update(ctx, id, input)
	recordMetrics(ctx, c.metrics, "category_update", start, err)
	return category, err
}

func (c *categoryUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)
	recordMetrics(ctx, c.metrics, "category_delete", start, err)
	return err
}

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{next: useCase, metrics: m}
}

func (s *secretUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateSecretInput,
) (*vaultDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Create(ctx, input)
	recordMetrics(ctx, s.metrics, "secret_create", start, err)
	return secret, err
}

func (s *secretUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Get(ctx, id)
	recordMetrics(ctx, s.metrics, "secret_get", start, err)
	return secret, err
}

func (s *secretUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.List(ctx, offset, limit)
	recordMetrics(ctx, s.metrics, "secret_list", start, err)
	return secrets, err
}

func (s *secretUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateSecretInput,
) (*vaultDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Update(ctx, id, input)
	recordMetrics(ctx, s.metrics, "secret_update", start, err)
	return secret, err
}

func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	recordMetrics(ctx, s.metrics, "secret_delete", start, err)
	return err
}
