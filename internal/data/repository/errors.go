package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrReferenced       = errors.New("record is referenced by other records")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrOutsideGrid      = errors.New("seat lies outside the dome grid")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// pgErrorCode returns the SQLSTATE of a postgres error, or "".
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError translates constraint violations raised by INSERT/UPDATE.
func mapWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return errors.Join(ErrDuplicate, err)
	case pgForeignKeyViolation:
		return errors.Join(ErrInvalidReference, err)
	}
	return err
}

// mapDeleteError translates a foreign key violation raised by DELETE.
func mapDeleteError(err error) error {
	if pgErrorCode(err) == pgForeignKeyViolation {
		return errors.Join(ErrReferenced, err)
	}
	return err
}
