package leave

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	leaveerrors "github.com/jyhens/Layer2-Application/internal/leave/errors"
	"gorm.io/gorm"
)

const leaveUniqueConstraint = "uq_leave_requests_employee_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if isDuplicateLeave(err) {
		return leaveerrors.ErrDuplicateLeave
	}
	return err
}

func isDuplicateLeave(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == leaveUniqueConstraint
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, leaveUniqueConstraint) {
		return true
	}
	return strings.Contains(errMsg, "unique constraint failed: leave_requests.")
}
