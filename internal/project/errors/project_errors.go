package projecterrors

import (
	"net/http"

	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
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
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid customer id",
		http.StatusBadRequest,
	)
	ErrCustomerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"customer does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not exist",
		http.StatusBadRequest,
	)
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"employee is already assigned to this project",
		http.StatusConflict,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"assignment not found",
		http.StatusNotFound,
	)
)
