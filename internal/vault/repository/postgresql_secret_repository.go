package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// PostgreSQLSecretRepository implements system password persistence for PostgreSQL.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL system password repository.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}

// Create inserts a new system password.
func (s *PostgreSQLSecretRepository) Create(ctx context.Context, secret *vaultDomain.Secret) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO system_passwords (id, name, description, password_hash, category_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

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
func (s *PostgreSQLSecretRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords WHERE id = $1`

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
func (s *PostgreSQLSecretRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system passwords")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// ListByCategory retrieves all system passwords owned by the given category.
func (s *PostgreSQLSecretRepository) ListByCategory(
	ctx context.Context,
	categoryID uuid.UUID,
) ([]*vaultDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords WHERE category_id = $1 ORDER BY created_at`

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
func (s *PostgreSQLSecretRepository) ListByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]*vaultDomain.Secret, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, description, password_hash, category_id, created_at, updated_at
			  FROM system_passwords WHERE id = ANY($1) ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system passwords by ids")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// Update modifies an existing system password.
func (s *PostgreSQLSecretRepository) Update(ctx context.Context, secret *vaultDomain.Secret) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE system_passwords
			  SET name = $1, description = $2, password_hash = $3, category_id = $4, updated_at = $5
			  WHERE id = $6`

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
func (s *PostgreSQLSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, s.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM system_passwords WHERE id = $1`, id)
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
func (s *PostgreSQLSecretRepository) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) error {
	querier := database.GetTx(ctx, s.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM system_passwords WHERE category_id = $1`, categoryID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete system passwords by category")
	}
	return nil
}

// scanSecrets drains rows into system password entities.
func scanSecrets(rows *sql.Rows) ([]*vaultDomain.Secret, error) {
	var secrets []*vaultDomain.Secret
	for rows.Next() {
		var secret vaultDomain.Secret
		if err := rows.Scan(
			&secret.ID,
			&secret.Name,
			&secret.Description,
			&secret.PasswordHash,
			&secret.CategoryID,
			&secret.CreatedAt,
			&secret.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan system password")
		}
		secrets = append(secrets, &secret)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate system passwords")
	}
	return secrets, nil
}
