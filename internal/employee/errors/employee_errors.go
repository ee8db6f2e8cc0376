package employeeerrors

import (
	"net/http"

	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"name is required",
		http.StatusBadRequest,
	)
	ErrNameTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"name must be at most 200 characters",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of EMPLOYEE, APPROVER, ADMIN",
		http.StatusBadRequest,
	)
	ErrAdminRequired = apperror.New(
		apperror.CodeForbidden,
		"admin role required to change roles",
		http.StatusForbidden,
	)
	ErrLastAdminDemotion = apperror.New(
		apperror.CodeConflict,
		"the last remaining admin cannot be demoted",
		http.StatusConflict,
	)
	ErrLastAdminDeletion = apperror.New(
		apperror.CodeConflict,
		"the last remaining admin cannot be deleted",
		http.StatusConflict,
	)
)
