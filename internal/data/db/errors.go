package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsIntegrityViolation reports whether err (or anything it wraps) is a
// uniqueness, foreign-key, check, or not-null violation. Postgres errors are
// matched on SQLSTATE class 23; other dialects go through their GORM
// translator.
func IsIntegrityViolation(dialector gorm.Dialector, err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	tr, ok := dialector.(gorm.ErrorTranslator)
	if !ok {
		return false
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch tr.Translate(e) {
		case gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated:
			return true
		}
	}
	return false
}
