package customererrors

import (
	"net/http"

	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"customer not found",
		http.StatusNotFound,
	)
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid customer id",
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
	ErrCustomerHasProjects = apperror.New(
		apperror.CodeConflict,
		"customer still has projects",
		http.StatusConflict,
	)
)
