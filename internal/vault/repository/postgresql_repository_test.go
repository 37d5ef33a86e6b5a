package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

func TestPostgreSQLPolicyRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		policy := &vaultDomain.Policy{
			ID:           uuid.Must(uuid.NewV7()),
			Name:         "Numbers",
			RegexPattern: "[0-9]",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		mock.ExpectExec("INSERT INTO password_policies").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLPolicyRepository(db)
		err = repo.Create(context.Background(), policy)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateNameMapsToConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO password_policies").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "password_policies_name_key"`))

		repo := NewPostgreSQLPolicyRepository(db)
		err = repo.Create(context.Background(), &vaultDomain.Policy{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyNameTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})
}

func TestPostgreSQLPolicyRepository_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM password_policies WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		repo := NewPostgreSQLPolicyRepository(db)
		_, err = repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyNotFound)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "description", "regex_pattern", "expiration", "created_at", "updated_at"}).
			AddRow(id, "Numbers", "needs a digit", "[0-9]", nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM password_policies WHERE id").
			WithArgs(id).
			WillReturnRows(rows)

		repo := NewPostgreSQLPolicyRepository(db)
		policy, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Numbers", policy.Name)
		assert.Equal(t, "[0-9]", policy.RegexPattern)
		assert.Nil(t, policy.Expiration)
	})
}

func TestPostgreSQLPolicyRepository_Delete(t *testing.T) {
	t.Run("ReferencedPolicyMapsToInUse", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM password_policies").
			WillReturnError(errors.New(`pq: update or delete on table "password_policies" violates foreign key constraint`))

		repo := NewPostgreSQLPolicyRepository(db)
		err = repo.Delete(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyInUse)
	})

	t.Run("NoRowsMapsToNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM password_policies").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLPolicyRepository(db)
		err = repo.Delete(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, vaultDomain.ErrPolicyNotFound)
	})
}

func TestPostgreSQLCategoryRepository_Create(t *testing.T) {
	t.Run("MissingPolicyMapsToConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO password_categories").
			WillReturnError(errors.New(`pq: insert or update on table "password_categories" violates foreign key constraint`))

		repo := NewPostgreSQLCategoryRepository(db)
		err = repo.Create(context.Background(), &vaultDomain.Category{
			ID:       uuid.Must(uuid.NewV7()),
			PolicyID: uuid.Must(uuid.NewV7()),
		})
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("DuplicateNameMapsToConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO password_categories").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'Databases' for key 'name'"))

		repo := NewPostgreSQLCategoryRepository(db)
		err = repo.Create(context.Background(), &vaultDomain.Category{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, vaultDomain.ErrCategoryNameTaken)
	})
}

func TestPostgreSQLSecretRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	categoryID := uuid.Must(uuid.NewV7())
	rows := sqlmock.NewRows([]string{"id", "name", "description", "password_hash", "category_id", "created_at", "updated_at"}).
		AddRow(uuid.Must(uuid.NewV7()), "prod-db", "", "$argon2id$hash1", categoryID, now, now).
		AddRow(uuid.Must(uuid.NewV7()), "staging-db", "", "$argon2id$hash2", categoryID, now, now)

	mock.ExpectQuery("SELECT (.+) FROM system_passwords ORDER BY created_at").
		WithArgs(0, 50).
		WillReturnRows(rows)

	repo := NewPostgreSQLSecretRepository(db)
	secrets, err := repo.List(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, "prod-db", secrets[0].Name)
	assert.Equal(t, "staging-db", secrets[1].Name)
}

func TestPostgreSQLSecretRepository_ListByIDs(t *testing.T) {
	t.Run("EmptyInputShortCircuits", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLSecretRepository(db)
		secrets, err := repo.ListByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, secrets)
	})
}

func TestPostgreSQLSecretRepository_Update(t *testing.T) {
	t.Run("NoRowsMapsToNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE system_passwords").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLSecretRepository(db)
		err = repo.Update(context.Background(), &vaultDomain.Secret{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, vaultDomain.ErrSecretNotFound)
	})
}
