package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/lib/pq"
)

const (
	uniqueViolation      = "23505"
	numericValueOutRange = "22003"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// translate maps driver errors onto domain sentinels.
func translate(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrRecordNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pqErr.Constraint, domain.ErrConflict)
		case numericValueOutRange:
			return fmt.Errorf("%s: %w", op, domain.NewValidationError("El valor excede el rango permitido"))
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
