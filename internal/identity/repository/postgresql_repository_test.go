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
	identityDomain "github.com/allisson/credvault/internal/identity/domain"
)

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	t.Run("DuplicateUsernameMapsToUsernameTaken", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		repo := NewPostgreSQLUserRepository(db)
		err = repo.Create(context.Background(), &identityDomain.User{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, identityDomain.ErrUsernameTaken)
	})

	t.Run("DuplicateEmailMapsToEmailTaken", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		repo := NewPostgreSQLUserRepository(db)
		err = repo.Create(context.Background(), &identityDomain.User{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, identityDomain.ErrEmailTaken)
	})

	t.Run("MissingPrivilegeMapsToNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: insert or update on table "users" violates foreign key constraint "users_privilege_id_fkey"`))

		repo := NewPostgreSQLUserRepository(db)
		err = repo.Create(context.Background(), &identityDomain.User{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, identityDomain.ErrPrivilegeNotFound)
	})
}

func TestPostgreSQLUserRepository_GetByTokenHash(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE token_hash").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		repo := NewPostgreSQLUserRepository(db)
		_, err = repo.GetByTokenHash(context.Background(), "deadbeef")
		assert.ErrorIs(t, err, identityDomain.ErrUserNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "username", "email", "password_hash", "token_hash",
			"is_admin", "privilege_id", "created_at", "updated_at",
		}).AddRow(id, "alice", "alice@example.com", "$argon2id$h", "deadbeef", true, nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE token_hash").
			WithArgs("deadbeef").
			WillReturnRows(rows)

		repo := NewPostgreSQLUserRepository(db)
		user, err := repo.GetByTokenHash(context.Background(), "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.IsAdmin)
		assert.Nil(t, user.PrivilegeID)
	})
}

func TestPostgreSQLPrivilegeRepository_Create(t *testing.T) {
	t.Run("DuplicateMapsToConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO privileges").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "privileges_priv_id_key"`))

		repo := NewPostgreSQLPrivilegeRepository(db)
		err = repo.Create(context.Background(), &identityDomain.Privilege{ID: uuid.Must(uuid.NewV7())})
		assert.ErrorIs(t, err, identityDomain.ErrPrivilegeTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})
}

func TestPostgreSQLAssignmentRepository_CreateBatch(t *testing.T) {
	t.Run("UnknownSecretMapsToInvalidInput", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO user_system_passwords").
			WillReturnError(errors.New(`pq: insert or update on table "user_system_passwords" violates foreign key constraint`))

		repo := NewPostgreSQLAssignmentRepository(db)
		err = repo.CreateBatch(context.Background(), []*identityDomain.Assignment{
			{UserID: uuid.Must(uuid.NewV7()), SecretID: uuid.Must(uuid.NewV7()), AssignedAt: time.Now()},
		})
		assert.ErrorIs(t, err, identityDomain.ErrUnknownSecret)
	})

	t.Run("InsertsEveryRow", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO user_system_passwords").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO user_system_passwords").WillReturnResult(sqlmock.NewResult(0, 1))

		userID := uuid.Must(uuid.NewV7())
		repo := NewPostgreSQLAssignmentRepository(db)
		err = repo.CreateBatch(context.Background(), []*identityDomain.Assignment{
			{UserID: userID, SecretID: uuid.Must(uuid.NewV7()), AssignedAt: time.Now()},
			{UserID: userID, SecretID: uuid.Must(uuid.NewV7()), AssignedAt: time.Now()},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
