// Package dberrors translates PostgreSQL driver errors into the
// application's sentinel errors.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hassy/readcycle/internal/pkg/apperrors"
)

// PostgreSQL error codes we care about.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNotNullViolation    = "23502"
)

// IsNotFound reports whether err is the driver's empty-result error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeUniqueViolation {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeForeignKeyViolation
}

// Map converts a low-level database error into an application error.
// notFound is returned for empty results so each repository can map
// misses to its own domain sentinel.
func Map(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		return notFound
	case IsUniqueViolation(err):
		return apperrors.ErrEmailAlreadyExists
	default:
		return errors.Join(apperrors.ErrDatabaseError, err)
	}
}
