package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// MySQLPolicyRepository implements Policy persistence for MySQL.
type MySQLPolicyRepository struct {
	db *sql.DB
}

// NewMySQLPolicyRepository creates a new MySQL Policy repository.
func NewMySQLPolicyRepository(db *sql.DB) *MySQLPolicyRepository {
	return &MySQLPolicyRepository{db: db}
}

// Create inserts a new Policy.
func (p *MySQLPolicyRepository) Create(ctx context.Context, policy *vaultDomain.Policy) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO password_policies (id, name, description, regex_pattern, expiration, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		policy.ID,
		policy.Name,
		policy.Description,
		policy.RegexPattern,
		policy.Expiration,
		policy.CreatedAt,
		policy.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return vaultDomain.ErrPolicyNameTaken
		}
		return apperrors.Wrap(err, "failed to create policy")
	}
	return nil
}

// Get retrieves a Policy by ID.
func (p *MySQLPolicyRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Policy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, regex_pattern, expiration, created_at, updated_at
			  FROM password_policies WHERE id = ?`

	var policy vaultDomain.Policy
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&policy.ID,
		&policy.Name,
		&policy.Description,
		&policy.RegexPattern,
		&policy.Expiration,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get policy")
	}

	return &policy, nil
}

// GetByName retrieves a Policy by its unique name.
func (p *MySQLPolicyRepository) GetByName(ctx context.Context, name string) (*vaultDomain.Policy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, regex_pattern, expiration, created_at, updated_at
			  FROM password_policies WHERE name = ?`

	var policy vaultDomain.Policy
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&policy.ID,
		&policy.Name,
		&policy.Description,
		&policy.RegexPattern,
		&policy.Expiration,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get policy by name")
	}

	return &policy, nil
}

// List retrieves policies ordered by creation time.
func (p *MySQLPolicyRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Policy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, regex_pattern, expiration, created_at, updated_at
			  FROM password_policies ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list policies")
	}
	defer rows.Close()

	var policies []*vaultDomain.Policy
	for rows.Next() {
		var policy vaultDomain.Policy
		if err := rows.Scan(
			&policy.ID,
			&policy.Name,
			&policy.Description,
			&policy.RegexPattern,
			&policy.Expiration,
			&policy.CreatedAt,
			&policy.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan policy")
		}
		policies = append(policies, &policy)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate policies")
	}

	return policies, nil
}

// Update modifies an existing Policy.
func (p *MySQLPolicyRepository) Update(ctx context.Context, policy *vaultDomain.Policy) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE password_policies
			  SET name = ?, description = ?, regex_pattern = ?, expiration = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		policy.Name,
		policy.Description,
		policy.RegexPattern,
		policy.Expiration,
		policy.UpdatedAt,
		policy.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return vaultDomain.ErrPolicyNameTaken
		}
		return apperrors.Wrap(err, "failed to update policy")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vaultDomain.ErrPolicyNotFound
	}

	return nil
}

// Delete removes a Policy. The foreign key on password_categories is
// RESTRICT, so deleting a policy still referenced by categories fails.
func (p *MySQLPolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM password_policies WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return vaultDomain.ErrPolicyInUse
		}
		return apperrors.Wrap(err, "failed to delete policy")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vaultDomain.ErrPolicyNotFound
	}

	return nil
}
