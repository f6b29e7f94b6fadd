package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when no row matches the query scope. A scoped
// update that affects zero rows also reports ErrNotFound so callers never
// mistake it for success.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when an insert violates the per-role
// unique email constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// uniqueViolation is the PostgreSQL error code for unique_violation
const uniqueViolation = "23505"

// translateError maps driver errors to the bounded error kinds handlers
// are allowed to surface. Anything else passes through for logging.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}
