package employee

import (
	"errors"

	employeeerrors "github.com/jyhens/Layer2-Application/internal/employee/errors"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}
