package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

// PostgreSQLAssignmentRepository implements the user ↔ system password
// assignment relation for PostgreSQL.
type PostgreSQLAssignmentRepository struct {
	db *sql.DB
}

// NewPostgreSQLAssignmentRepository creates a new PostgreSQL Assignment repository.
func NewPostgreSQLAssignmentRepository(db *sql.DB) *PostgreSQLAssignmentRepository {
	return &PostgreSQLAssignmentRepository{db: db}
}

// CreateBatch inserts assignment rows for a user. Duplicate pairs surface as
// a conflict, which reconciliation avoids by only inserting missing pairs.
func (a *PostgreSQLAssignmentRepository) CreateBatch(
	ctx context.Context,
	assignments []*identityDomain.Assignment,
) error {
	querier := database.GetTx(ctx, a.db)

	query := `INSERT INTO user_system_passwords (user_id, system_password_id, assigned_at)
			  VALUES ($1, $2, $3)`

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
func (a *PostgreSQLAssignmentRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*identityDomain.Assignment, error) {
	querier := database.GetTx(ctx, a.db)

	query := `SELECT user_id, system_password_id, assigned_at
			  FROM user_system_passwords WHERE user_id = $1 ORDER BY assigned_at`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list assignments by user")
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// ListBySecret retrieves the assignments referencing a system password.
func (a *PostgreSQLAssignmentRepository) ListBySecret(
	ctx context.Context,
	secretID uuid.UUID,
) ([]*identityDomain.Assignment, error) {
	querier := database.GetTx(ctx, a.db)

	query := `SELECT user_id, system_password_id, assigned_at
			  FROM user_system_passwords WHERE system_password_id = $1 ORDER BY assigned_at`

	rows, err := querier.QueryContext(ctx, query, secretID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list assignments by secret")
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// Delete removes a single (user, secret) assignment pair.
func (a *PostgreSQLAssignmentRepository) Delete(ctx context.Context, userID, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, a.db)

	query := `DELETE FROM user_system_passwords WHERE user_id = $1 AND system_password_id = $2`

	_, err := querier.ExecContext(ctx, query, userID, secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assignment")
	}
	return nil
}

// DeleteByUser removes every assignment held by the user.
func (a *PostgreSQLAssignmentRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, a.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM user_system_passwords WHERE user_id = $1`, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assignments by user")
	}
	return nil
}

// DeleteBySecret removes every assignment referencing the system password.
func (a *PostgreSQLAssignmentRepository) DeleteBySecret(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, a.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM user_system_passwords WHERE system_password_id = $1`, secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assignments by secret")
	}
	return nil
}

// scanAssignments drains rows into assignment entities.
func scanAssignments(rows *sql.Rows) ([]*identityDomain.Assignment, error) {
	var assignments []*identityDomain.Assignment
	for rows.Next() {
		var assignment identityDomain.Assignment
		if err := rows.Scan(&assignment.UserID, &assignment.SecretID, &assignment.AssignedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan assignment")
		}
		assignments = append(assignments, &assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate assignments")
	}
	return assignments, nil
}
