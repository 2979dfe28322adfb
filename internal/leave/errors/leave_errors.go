package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDateRangeTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"date range is too long",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrPolicyViolation = apperror.New(
		apperror.CodeValidation,
		"leave request violates leave policy",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"no approval step assigned to this approver",
		http.StatusNotFound,
	)
	ErrNoApproverFound = apperror.New(
		apperror.CodeNotFound,
		"no active employee holds the required approver role",
		http.StatusNotFound,
	)
	ErrNoNextApprover = apperror.New(
		apperror.CodeStateConflict,
		"approver is the last step of the chain",
		http.StatusConflict,
	)
	ErrStateConflict = apperror.New(
		apperror.CodeStateConflict,
		"leave or approval step was already decided",
		http.StatusConflict,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeReasonRequired,
		"a reason is required",
		http.StatusBadRequest,
	)
	ErrCancelForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel this leave",
		http.StatusForbidden,
	)
	ErrLeaveNotCancellable = apperror.New(
		apperror.CodeForbidden,
		"leave can no longer be cancelled",
		http.StatusForbidden,
	)
	ErrResubmitForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the requester can resubmit this leave",
		http.StatusForbidden,
	)
	ErrLeaveNotReturned = apperror.New(
		apperror.CodeStateConflict,
		"only returned leaves can be resubmitted",
		http.StatusConflict,
	)
	ErrLeaveAccessForbidden = apperror.New(
		apperror.CodeForbidden,
		"you cannot view this leave",
		http.StatusForbidden,
	)
	ErrDuplicateLeave = apperror.New(
		apperror.CodeConflict,
		"leave already exists",
		http.StatusConflict,
	)
)
