package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint failure on
// Postgres or SQLite. A non-empty constraint narrows the match.
func IsUniqueViolation(err error, constraint string) bool {
	return matches(err, pgUniqueViolation, []string{"UNIQUE constraint failed", "duplicate key value"}, constraint)
}

// IsForeignKeyViolation reports a dangling reference.
func IsForeignKeyViolation(err error) bool {
	return matches(err, pgForeignKeyViolation, []string{"FOREIGN KEY constraint failed", "violates foreign key constraint"}, "")
}

// IsCheckViolation reports a failed CHECK constraint, e.g. negative stock.
func IsCheckViolation(err error) bool {
	return matches(err, pgCheckViolation, []string{"CHECK constraint failed", "violates check constraint"}, "")
}

func matches(err error, pgCode string, fragments []string, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgCode {
			return false
		}
		return constraint == "" || pgErr.ConstraintName == constraint
	}
	msg := err.Error()
	for _, fragment := range fragments {
		if strings.Contains(msg, fragment) {
			return constraint == "" || strings.Contains(msg, constraint)
		}
	}
	return false
}
