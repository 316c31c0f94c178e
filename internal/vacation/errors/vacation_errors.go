package vacationerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrVacationRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vacation request not found",
		http.StatusNotFound,
	)

	ErrVacationRequestConflict = apperror.New(
		apperror.CodeConflict,
		"Vacation request already exists",
		http.StatusConflict,
	)

	ErrRelatedRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Referenced record not found",
		http.StatusNotFound,
	)
)
