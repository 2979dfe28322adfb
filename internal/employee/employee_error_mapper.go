package employee

import (
	"errors"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 22P02: malformed uuid in a lookup.
		if pgErr.Code == "22P02" {
			return employeeerrors.ErrInvalidEmployeeID
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "invalid input syntax for type uuid") {
		return employeeerrors.ErrInvalidEmployeeID
	}

	return err
}
