package employee

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "hr-admin/internal/employee/errors"
)

// mapRepositoryError translates storage failures into the module's error
// vocabulary: duplicates conflict, broken references read as not found.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return employeeerrors.ErrEmployeeAlreadyExists
		case "23503":
			return employeeerrors.ErrRelatedRecordNotFound
		}
	}

	return err
}
