package vacation

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hr-admin/internal/shared/apperror"
	vacationerrors "hr-admin/internal/vacation/errors"
)

func vacationDateError(field string) error {
	return apperror.InvalidField(field)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vacationerrors.ErrVacationRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return vacationerrors.ErrVacationRequestConflict
		case "23503":
			return vacationerrors.ErrRelatedRecordNotFound
		}
	}

	return err
}
