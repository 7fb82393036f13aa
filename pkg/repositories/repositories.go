// Package repositories implements raw-SQL data access on PostgreSQL.
// Repositories translate driver failures into the shared error taxonomy:
// pgx.ErrNoRows and zero rows affected become ErrNotFound, unique-constraint
// violations become ErrDuplicate.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE for a unique-constraint violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
