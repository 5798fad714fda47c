package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when a query matches no rows.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when a write violates a foreign key constraint.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when gorm rejects the value being written.
	ErrInvalidData = errors.New("invalid data")
)

// SQLSTATE codes checked on raw driver errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TranslateError maps gorm and pgx errors onto the package sentinels.
// Unknown errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return ErrDuplicateKey
		case foreignKeyViolation:
			return ErrForeignKey
		}
	}

	return err
}

// TranslateError is the method form used through injected clients.
func (p *Postgres) TranslateError(err error) error {
	return TranslateError(err)
}
