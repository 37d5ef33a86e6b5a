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

// MySQLUserRepository implements User persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new User.
func (u *MySQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, u.db)

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
func (u *MySQLUserRepository) Get(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	return u.getBy(ctx, `id = ?`, id)
}

// GetByUsername retrieves a User by username.
func (u *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*identityDomain.User, error) {
	return u.getBy(ctx, `username = ?`, username)
}

// GetByEmail retrieves a User by email.
func (u *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	return u.getBy(ctx, `email = ?`, email)
}

// GetByTokenHash retrieves the User holding the given bearer token digest.
func (u *MySQLUserRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*identityDomain.User, error) {
	return u.getBy(ctx, `token_hash = ?`, tokenHash)
}

func (u *MySQLUserRepository) getBy(ctx context.Context, where string, arg any) (*identityDomain.User, error) {
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
func (u *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, u.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Update modifies an existing User.
func (u *MySQLUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, u.db)

	query := `UPDATE users
			  SET username = ?, email = ?, password_hash = ?, token_hash = ?,
			      is_admin = ?, privilege_id = ?, updated_at = ?
			  WHERE id = ?`

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
func (u *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, u.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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
