package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/dberrors"
)

const userColumns = `user_id, full_name, email, avatar, is_online, university, major,
	phone_number, bio, password_hash, is_verified,
	forget_password_token, forget_password_token_expires_at,
	verification_token, verification_token_expires_at,
	created_at, updated_at`

// UserRepository is the PostgreSQL implementation of IUserRepository.
type UserRepository struct {
	db DB
	sb sq.StatementBuilderType
}

// NewUserRepository creates a user repository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var avatar, major, phone, bio *string
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &avatar, &u.IsOnline, &u.University, &major,
		&phone, &bio, &u.PasswordHash, &u.IsVerified,
		&u.ForgetPasswordToken, &u.ForgetPasswordTokenExpiresAt,
		&u.VerificationToken, &u.VerificationTokenExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	if major != nil {
		u.Major = *major
	}
	if phone != nil {
		u.PhoneNumber = *phone
	}
	if bio != nil {
		u.Bio = *bio
	}
	return &u, nil
}

// Create inserts an unverified account with its pending OTP and fills
// the generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (full_name, email, university, major, password_hash,
			verification_token, verification_token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id, created_at, updated_at`,
		user.FullName, user.Email, user.University, nullable(user.Major),
		user.PasswordHash, user.VerificationToken, user.VerificationTokenExpiresAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches an account by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns), id)
	u, err := scanUser(row)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrUserNotFound)
	}
	return u, nil
}

// GetByEmail fetches an account by email (case-insensitive via citext).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns), email)
	u, err := scanUser(row)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrUserNotFound)
	}
	return u, nil
}

// GetByResetTokenHash fetches the account holding the given reset
// token digest.
func (r *UserRepository) GetByResetTokenHash(ctx context.Context, hash string) (*models.User, error) {
	row := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE forget_password_token = $1`, userColumns), hash)
	u, err := scanUser(row)
	if err != nil {
		return nil, dberrors.Map(err, apperrors.ErrInvalidResetToken)
	}
	return u, nil
}

// Update applies a partial update and returns the fresh row. The
// fields map keys are column names; the query is built with squirrel.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	builder := r.sb.Update("users").Where(sq.Eq{"user_id": id})
	for col, val := range fields {
		builder = builder.Set(col, val)
	}
	builder = builder.Set("updated_at", sq.Expr("now()")).
		Suffix("RETURNING " + userColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user update: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, dberrors.Map(err, apperrors.ErrUserNotFound)
	}
	return u, nil
}

// DeleteCascade removes the account along with its books, messages and
// created conversations in one transaction.
func (r *UserRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM books WHERE book_owner = $1`,
		`DELETE FROM messages WHERE sender_id = $1`,
		`DELETE FROM conversations WHERE created_by = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete account data: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return tx.Commit(ctx)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
