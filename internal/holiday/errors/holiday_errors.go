package holidayerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrHolidayAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A holiday is already registered on this date",
		http.StatusConflict,
	)
	ErrRangeTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Holiday range spans too many years",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
