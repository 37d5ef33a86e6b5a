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

// PostgreSQLCategoryRepository implements Category persistence for PostgreSQL.
type PostgreSQLCategoryRepository struct {
	db *sql.DB
}

// NewPostgreSQLCategoryRepository creates a new PostgreSQL Category repository.
func NewPostgreSQLCategoryRepository(db *sql.DB) *PostgreSQLCategoryRepository {
	return &PostgreSQLCategoryRepository{db: db}
}

// Create inserts a new Category.
func (c *PostgreSQLCategoryRepository) Create(ctx context.Context, category *vaultDomain.Category) error {
	querier := database.GetTx(ctx, c.db)

	query := `INSERT INTO password_categories (id, name, description, password_policy_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

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
func (c *PostgreSQLCategoryRepository) Get(ctx context.Context, id uuid.UUID) (*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories WHERE id = $1`

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
func (c *PostgreSQLCategoryRepository) GetByName(ctx context.Context, name string) (*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories WHERE name = $1`

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
func (c *PostgreSQLCategoryRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	defer rows.Close()

	return scanCategories(rows)
}

// ListByPolicy retrieves all categories referencing the given policy.
func (c *PostgreSQLCategoryRepository) ListByPolicy(
	ctx context.Context,
	policyID uuid.UUID,
) ([]*vaultDomain.Category, error) {
	querier := database.GetTx(ctx, c.db)

	query := `SELECT id, name, description, password_policy_id, created_at, updated_at
			  FROM password_categories WHERE password_policy_id = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, policyID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories by policy")
	}
	defer rows.Close()

	return scanCategories(rows)
}

// Update modifies an existing Category.
func (c *PostgreSQLCategoryRepository) Update(ctx context.Context, category *vaultDomain.Category) error {
	querier := database.GetTx(ctx, c.db)

	query := `UPDATE password_categories
			  SET name = $1, description = $2, password_policy_id = $3, updated_at = $4
			  WHERE id = $5`

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
func (c *PostgreSQLCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, c.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM password_categories WHERE id = $1`, id)
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

// scanCategories drains rows into category entities.
func scanCategories(rows *sql.Rows) ([]*vaultDomain.Category, error) {
	var categories []*vaultDomain.Category
	for rows.Next() {
		var category vaultDomain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.PolicyID,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate categories")
	}
	return categories, nil
}
