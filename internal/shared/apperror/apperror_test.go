package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "leave already exists", http.StatusConflict)
		got := apperror.ToHTTP(fmt.Errorf("create: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.Equal(t, "leave already exists", got.Message)
	})

	t.Run("unknown error hides details", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "connection reset")
	})
}

func TestAppError_IsMatchesWrappedCopy(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := apperror.ErrInvalidInput.WithCause(cause)

	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		EmployeeID string `json:"employee_id" validate:"required"`
		Date       string `json:"date" validate:"datetime=2006-01-02"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	err := v.Struct(payload{Date: "2025-06-10"})
	mapped := apperror.MapValidationError(err)
	assert.Equal(t, "Employee Id is required", mapped.Error())

	err = v.Struct(payload{EmployeeID: "x", Date: "10.06.2025"})
	mapped = apperror.MapValidationError(err)
	assert.Equal(t, "Date is invalid", mapped.Error())

	mapped = apperror.MapValidationError(errors.New("EOF"))
	assert.Equal(t, http.StatusBadRequest, apperror.ToHTTP(mapped).Status)
}
