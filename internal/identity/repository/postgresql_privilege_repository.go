package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

// PostgreSQLPrivilegeRepository implements Privilege persistence for PostgreSQL.
type PostgreSQLPrivilegeRepository struct {
	db *sql.DB
}

// NewPostgreSQLPrivilegeRepository creates a new PostgreSQL Privilege repository.
func NewPostgreSQLPrivilegeRepository(db *sql.DB) *PostgreSQLPrivilegeRepository {
	return &PostgreSQLPrivilegeRepository{db: db}
}

// Create inserts a new Privilege.
func (p *PostgreSQLPrivilegeRepository) Create(ctx context.Context, privilege *identityDomain.Privilege) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO privileges (id, priv_id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		privilege.ID,
		privilege.PrivID,
		privilege.Name,
		privilege.Description,
		privilege.CreatedAt,
		privilege.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return identityDomain.ErrPrivilegeTaken
		}
		return apperrors.Wrap(err, "failed to create privilege")
	}
	return nil
}

// Get retrieves a Privilege by ID.
func (p *PostgreSQLPrivilegeRepository) Get(ctx context.Context, id uuid.UUID) (*identityDomain.Privilege, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, priv_id, name, description, created_at, updated_at
			  FROM privileges WHERE id = $1`

	var privilege identityDomain.Privilege
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&privilege.ID,
		&privilege.PrivID,
		&privilege.Name,
		&privilege.Description,
		&privilege.CreatedAt,
		&privilege.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrPrivilegeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get privilege")
	}

	return &privilege, nil
}

// List retrieves privileges ordered by numeric code.
func (p *PostgreSQLPrivilegeRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.Privilege, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, priv_id, name, description, created_at, updated_at
			  FROM privileges ORDER BY priv_id OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list privileges")
	}
	defer rows.Close()

	return scanPrivileges(rows)
}

// Update modifies an existing Privilege.
func (p *PostgreSQLPrivilegeRepository) Update(ctx context.Context, privilege *identityDomain.Privilege) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE privileges
			  SET priv_id = $1, name = $2, description = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		privilege.PrivID,
		privilege.Name,
		privilege.Description,
		privilege.UpdatedAt,
		privilege.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return identityDomain.ErrPrivilegeTaken
		}
		return apperrors.Wrap(err, "failed to update privilege")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrPrivilegeNotFound
	}

	return nil
}

// Delete removes a Privilege. The users foreign key is SET NULL, so users
// holding the privilege simply lose it.
func (p *PostgreSQLPrivilegeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM privileges WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete privilege")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrPrivilegeNotFound
	}

	return nil
}

// scanPrivileges drains rows into privilege entities.
func scanPrivileges(rows *sql.Rows) ([]*identityDomain.Privilege, error) {
	var privileges []*identityDomain.Privilege
	for rows.Next() {
		var privilege identityDomain.Privilege
		if err := rows.Scan(
			&privilege.ID,
			&privilege.PrivID,
			&privilege.Name,
			&privilege.Description,
			&privilege.CreatedAt,
			&privilege.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan privilege")
		}
		privileges = append(privileges, &privilege)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate privileges")
	}
	return privileges, nil
}
