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

// MySQLCategoryRepository implements Category persistence for MySQL.
type MySQLCategoryRepository struct {
	db *sql.DB
}

// NewMySQLCategoryRepository creates a new MySQL Category repository.
func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{db: db}
}

// Create inserts a new Category.
func (c *MySQLCategoryRepository) Create(ctx context.Context, category *vaultDomain.Category) error {
	querier := database.GetTx(ctx, c.db)

	query := `INSERT INTO password_categories (id, name, description, password_policy_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.Description,
		category.PolicyID,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return vaultDomain.ErrCategoryNameTaken
		}
		if isForeignKeyViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "referenced policy no longer exists")
		}
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

// Get retrieves a Category by ID.
func (c *MySQLCategoryRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories WHERE id = ?`

	var category vaultDomain.Category
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.PolicyID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category")
	}

	return &category, nil
}

// GetByName retrieves a Category by its unique name.
func (c *MySQLCategoryRepository) GetByName(ctx context.Context, name string) (*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories WHERE name = ?`

	var category vaultDomain.Category
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.PolicyID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaultDomain.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category by name")
	}

	return &category, nil
}

// List retrieves categories ordered by creation time.
func (c *MySQLCategoryRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	defer rows.Close()

	return scanCategories(rows)
}

// ListByPolicy retrieves all categories referencing the given policy.
func (c *MySQLCategoryRepository) ListByPolicy(
	ctx context.Context,
	policyID uuid.UUID,
) ([]*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories WHERE password_policy_id = ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, policyID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories by policy")
	}
	defer rows.Close()

	return scanCategories(rows)
}

// Update modifies an existing Category.
func (c *MySQLCategoryRepository) Update(ctx context.Context, category *vaultDomain.Category) error {
	querier := database.GetTx(ctx, c.db)

	query := `UPDATE password_categories
			  SET name = ?, description = ?, password_policy_id = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		category.Name,
		category.Description,
		category.PolicyID,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return vaultDomain.ErrCategoryNameTaken
		}
		if isForeignKeyViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "referenced policy no longer exists")
		}
		return apperrors.Wrap(err, "failed to update category")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vaultDomain.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a Category row. Cascading cleanup of the category's system
// passwords is orchestrated by the use case inside a transaction.
func (c *MySQLCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, c.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM password_categories WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete category")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vaultDomain.ErrCategoryNotFound
	}

	return nil
}
