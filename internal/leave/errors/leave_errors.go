package leaveerrors

import (
	"net/http"

	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not exist",
		http.StatusBadRequest,
	)
	ErrDuplicateLeave = apperror.New(
		apperror.CodeConflict,
		"a leave request for this employee and date already exists",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrDecisionForbidden = apperror.New(
		apperror.CodeForbidden,
		"only approvers or admins may decide leave requests",
		http.StatusForbidden,
	)
	ErrSelfDecision = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide your own leave request",
		http.StatusForbidden,
	)
	ErrAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"leave is already approved",
		http.StatusConflict,
	)
	ErrRejectedCannotBeApproved = apperror.New(
		apperror.CodeInvalidState,
		"rejected leave cannot be approved",
		http.StatusConflict,
	)
	ErrAlreadyRejected = apperror.New(
		apperror.CodeInvalidState,
		"leave is already rejected",
		http.StatusConflict,
	)
	ErrApprovedCannotBeRejected = apperror.New(
		apperror.CodeInvalidState,
		"approved leave cannot be rejected",
		http.StatusConflict,
	)
	ErrConcurrentDecision = apperror.New(
		apperror.CodeInvalidState,
		"leave was decided by someone else in the meantime",
		http.StatusConflict,
	)
)
