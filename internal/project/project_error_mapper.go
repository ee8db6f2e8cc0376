package project

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	projecterrors "github.com/jyhens/Layer2-Application/internal/project/errors"
	"gorm.io/gorm"
)

const assignmentUniqueConstraint = "uq_project_assignments_employee_project"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}
	if isDuplicateAssignment(err) {
		return projecterrors.ErrAlreadyAssigned
	}
	return err
}

func isDuplicateAssignment(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == assignmentUniqueConstraint
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, assignmentUniqueConstraint) {
		return true
	}
	// sqlite reports the columns instead of the constraint name
	return strings.Contains(errMsg, "unique constraint failed: project_assignments.")
}
