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

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, token_hash, is_admin, privilege_id, created_at, updated_at`

// Create inserts a new User.
func (u *PostgreSQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, u.db)

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.TokenHash,
		user.IsAdmin,
		user.PrivilegeID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUserWriteError(err); mapped != nil {
			return mapped
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a User by ID.
func (u *PostgreSQLUserRepository) Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	return u.getBy(ctx, `id = $1`, id)
}

// GetByUsername retrieves a User by username.
func (u *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*identityDomain.User, error) {
	return u.getBy(ctx, `username = $1`, username)
}

// GetByEmail retrieves a User by email.
func (u *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	return u.getBy(ctx, `email = $1`, email)
}

// GetByTokenHash retrieves the User holding the given bearer token digest.
func (u *PostgreSQLUserRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*identityDomain.User, error) {
	return u.getBy(ctx, `token_hash = $1`, tokenHash)
}

func (u *PostgreSQLUserRepository) getBy(ctx context.Context, where string, arg any) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, u.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var user identityDomain.User
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.TokenHash,
		&user.IsAdmin,
		&user.PrivilegeID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}

// List retrieves users ordered by creation time.
func (u *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, u.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Update modifies an existing User.
func (u *PostgreSQLUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, u.db)

	query := `UPDATE users
			  SET username = $1, email = $2, password_hash = $3, token_hash = $4,
			      is_admin = $5, privilege_id = $6, updated_at = $7
			  WHERE id = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.TokenHash,
		user.IsAdmin,
		user.PrivilegeID,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if mapped := mapUserWriteError(err); mapped != nil {
			return mapped
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrUserNotFound
	}

	return nil
}

// Delete removes a User row. Removing the user's assignment rows first is
// the use case's responsibility, inside a transaction.
func (u *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, u.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrUserNotFound
	}

	return nil
}

// mapUserWriteError converts driver constraint errors on the users table to
// domain errors, or nil when the error is not a recognized constraint.
func mapUserWriteError(err error) error {
	switch {
	case isUniqueViolation(err) && violatesColumn(err, "username"):
		return identityDomain.ErrUsernameTaken
	case isUniqueViolation(err) && violatesColumn(err, "email"):
		return identityDomain.ErrEmailTaken
	case isUniqueViolation(err):
		return apperrors.Wrap(apperrors.ErrConflict, "user violates a unique constraint")
	case isForeignKeyViolation(err):
		return identityDomain.ErrPrivilegeNotFound
	default:
		return nil
	}
}

// scanUsers drains rows into user entities.
func scanUsers(rows *sql.Rows) ([]*identityDomain.User, error) {
	var users []*identityDomain.User
	for rows.Next() {
		var user identityDomain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.TokenHash,
			&user.IsAdmin,
			&user.PrivilegeID,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}
	return users, nil
}
