package leave

import (
	"errors"
	"strings"

	leaveerrors "go-leave/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates driver errors for leave lookups. notFound is
// returned for missing rows and malformed ids alike.
func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return leaveerrors.ErrDuplicateLeave
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return leaveerrors.ErrDuplicateLeave
		case "22P02":
			return notFound
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") {
		return leaveerrors.ErrDuplicateLeave
	}
	if strings.Contains(msg, "invalid input syntax for type uuid") {
		return notFound
	}

	return err
}
