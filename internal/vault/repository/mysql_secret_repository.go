package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// MySQLSecretRepository implements system password persistence for MySQL.
type MySQLSecretRepository struct {
	db *sql.DB
}

// NewMySQLSecretRepository creates a new MySQL system password repository.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}

// Create inserts a new system password.
func (s *MySQLSecretRepository) Create(ctx context.Context, secret *vaultDomain.Secret) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO system_passwords (id, name, description, password_hash, category_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.Name,
		secret.Description,
		secret.PasswordHash,
		secret.CategoryID,
		secret.CreatedAt,
		secret.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "referenced category no longer exists")
		}
		return apperrors.Wrap(err, "failed to create system password")
	}
	return nil
}

// Get retrieves a system password by ID.
func (s *MySQLSecretRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords WHERE id = ?`

	var secret vaultDomain.Secret
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&secret.ID,
		&secret.Name,
		&secret.Description,
		&secret.PasswordHash,
		&secret.CategoryID,
		&secret.CreatedAt,
		&secret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get system password")
	}

	return &secret, nil
}

// List retrieves system passwords ordered by creation time.
func (s *MySQLSecretRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system passwords")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// ListByCategory retrieves all system passwords owned by the given category.
func (s *MySQLSecretRepository) ListByCategory(
	ctx context.Context,
	categoryID uuid.UUID,
) ([]*vaultDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords WHERE category_id = ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system passwords by category")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// ListByIDs retrieves the system passwords matching the given identifiers.
// Identifiers with no matching row are simply absent from the result; the
// caller decides whether that is an error.
func (s *MySQLSecretRepository) ListByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]*vaultDomain.Secret, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, s.db)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords WHERE id IN (` + placeholders + `) ORDER BY created_at`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system passwords by ids")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// Update modifies an existing system password.
func (s *MySQLSecretRepository) Update(ctx context.Context, secret *vaultDomain.Secret) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE system_passwords
			  SET name = ?, description = ?, password_hash = ?, category_id = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		secret.Name,
		secret.Description,
		secret.PasswordHash,
		secret.CategoryID,
		secret.UpdatedAt,
		secret.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "referenced category no longer exists")
		}
		return apperrors.Wrap(err, "failed to update system password")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vaultDomain.ErrSecretNotFound
	}

	return nil
}

// Delete removes a system password row. Detaching assignment rows first is
// the use case's responsibility, inside a transaction.
func (s *MySQLSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, s.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM system_passwords WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete system password")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vaultDomain.ErrSecretNotFound
	}

	return nil
}

// DeleteByCategory removes every system password owned by the given category.
func (s *MySQLSecretRepository) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) error {
	querier := database.GetTx(ctx, s.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM system_passwords WHERE category_id = ?`, categoryID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete system passwords by category")
	}
	return nil
}
