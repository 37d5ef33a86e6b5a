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

// MySQLPrivilegeRepository implements Privilege persistence for MySQL.
type MySQLPrivilegeRepository struct {
	db *sql.DB
}

// NewMySQLPrivilegeRepository creates a new MySQL Privilege repository.
func NewMySQLPrivilegeRepository(db *sql.DB) *MySQLPrivilegeRepository {
	return &MySQLPrivilegeRepository{db: db}
}

// Create inserts a new Privilege.
func (p *MySQLPrivilegeRepository) Create(ctx context.Context, privilege *identityDomain.Privilege) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO privileges (id, priv_id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

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
func (p *MySQLPrivilegeRepository) Get(ctx context.Context, id uuid.UUID) (*identityDomain.Privilege, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, priv_id, name, description, created_at, updated_at
			  FROM privileges WHERE id = ?`

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
func (p *MySQLPrivilegeRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.Privilege, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, priv_id, name, description, created_at, updated_at
			  FROM privileges ORDER BY priv_id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list privileges")
	}
	defer rows.Close()

	return scanPrivileges(rows)
}

// Update modifies an existing Privilege.
func (p *MySQLPrivilegeRepository) Update(ctx context.Context, privilege *identityDomain.Privilege) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE privileges
			  SET priv_id = ?, name = ?, description = ?, updated_at = ?
			  WHERE id = ?`

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
func (p *MySQLPrivilegeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM privileges WHERE id = ?`, id)
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
