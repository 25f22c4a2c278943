package postgres

import (
	"database/sql"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqCheckViolation      pq.ErrorCode = "23514"
)

// ErrConstraint marks writes that violate a table constraint. Match it with
// cockroachdb/errors.Is.
var ErrConstraint = errors.New("constraint violation")

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// wrapWriteError tags constraint failures with ErrConstraint and adds the
// operation name and a stack to every error.
func wrapWriteError(err error, op string) error {
	if err == nil {
		return nil
	}
	if code, ok := pqCode(err); ok {
		switch code {
		case pqUniqueViolation, pqForeignKeyViolation, pqCheckViolation:
			return crerr.Wrapf(crerr.Mark(err, ErrConstraint), "%s", op)
		}
	}
	return crerr.Wrapf(err, "%s", op)
}
