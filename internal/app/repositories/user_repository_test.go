package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

var userCols = []string{
	"user_id", "full_name", "email", "avatar", "is_online", "university", "major",
	"phone_number", "bio", "password_hash", "is_verified",
	"forget_password_token", "forget_password_token_expires_at",
	"verification_token", "verification_token_expires_at",
	"created_at", "updated_at",
}

func userRow(id, email string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userCols).AddRow(
		id, "Ada Lovelace", email, nil, false, "Metro State", nil,
		nil, nil, "$2a$10$hash", true,
		nil, nil, nil, nil, now, now,
	)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ada@uni.edu").
		WillReturnRows(userRow("u-1", "ada@uni.edu"))

	user, err := repo.GetByEmail(context.Background(), "ada@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	assert.True(t, user.IsVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectQuery(`FROM users WHERE user_id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	user := &models.User{FullName: "Ada", Email: "ada@uni.edu", University: "Metro State"}
	err = repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUserRepositoryDeleteCascade(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM books WHERE book_owner = \$1`).
		WithArgs("u-1").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM messages WHERE sender_id = \$1`).
		WithArgs("u-1").WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectExec(`DELETE FROM conversations WHERE created_by = \$1`).
		WithArgs("u-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM users WHERE user_id = \$1`).
		WithArgs("u-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), "u-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeleteCascadeMissingUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM books`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM messages`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM conversations`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM users`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err = repo.DeleteCascade(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
