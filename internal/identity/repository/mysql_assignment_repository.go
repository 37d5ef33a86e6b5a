package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

// MySQLAssignmentRepository implements the user ↔ system password assignment
// relation for MySQL.
type MySQLAssignmentRepository struct {
	db *sql.DB
}

// NewMySQLAssignmentRepository creates a new MySQL Assignment repository.
func NewMySQLAssignmentRepository(db *sql.DB) *MySQLAssignmentRepository {
	return &MySQLAssignmentRepository{db: db}
}

// CreateBatch inserts assignment rows for a user. Duplicate pairs surface as
// a conflict, which reconciliation avoids by only inserting missing pairs.
func (a *MySQLAssignmentRepository) CreateBatch(
	ctx context.Context,
	assignments []*identityDomain.Assignment,
) error {
	querier := database.GetTx(ctx, a.db)

	query := `INSERT INTO user_system_passwords (user_id, system_password_id, assigned_at)
			  VALUES (?, ?, ?)`

	for _, assignment := range assignments {
		_, err := querier.ExecContext(ctx, query, assignment.UserID, assignment.SecretID, assignment.AssignedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Wrap(apperrors.ErrConflict, "assignment already exists")
			}
			if isForeignKeyViolation(err) {
				return identityDomain.ErrUnknownSecret
			}
			return apperrors.Wrap(err, "failed to create assignment")
		}
	}
	return nil
}

// ListByUser retrieves the user's assignments ordered by assignment time.
func (a *MySQLAssignmentRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*identityDomain.Assignment, error) {
	querier := database.GetTx(ctx, a.db)

	query := `SELECT user_id, system_password_id, assigned_at
			  FROM user_system_passwords WHERE user_id = ? ORDER BY assigned_at`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list assignments by user")
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// ListBySecret retrieves the assignments referencing a system password.
func (a *MySQLAssignmentRepository) ListBySecret(
	ctx context.Context,
	secretID uuid.UUID,
) ([]*identityDomain.Assignment, error) {
	querier := database.GetTx(ctx, a.db)

	query := `SELECT user_id, system_password_id, assigned_at
			  FROM user_system_passwords WHERE system_password_id = ? ORDER BY assigned_at`

	rows, err := querier.QueryContext(ctx, query, secretID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list assignments by secret")
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// Delete removes a single (user, secret) assignment pair.
func (a *MySQLAssignmentRepository) Delete(ctx context.Context, userID, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, a.db)

	query := `DELETE FROM user_system_passwords WHERE user_id = ? AND system_password_id = ?`

	_, err := querier.ExecContext(ctx, query, userID, secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assignment")
	}
	return nil
}

// DeleteByUser removes every assignment held by the user.
func (a *MySQLAssignmentRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, a.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM user_system_passwords WHERE user_id = ?`, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assignments by user")
	}
	return nil
}

// DeleteBySecret removes every assignment referencing the system password.
func (a *MySQLAssignmentRepository) DeleteBySecret(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, a.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM user_system_passwords WHERE system_password_id = ?`, secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assignments by secret")
	}
	return nil
}
