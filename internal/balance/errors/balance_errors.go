package balanceerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave balance has not been provisioned",
		http.StatusNotFound,
	)
	ErrUntrackedLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Leave type does not track a balance",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Balance amounts must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Deducted days must be positive",
		http.StatusBadRequest,
	)
)
