package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/shared/dbtx"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
	Exists(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error)
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAll(ctx context.Context, f Filter) ([]LeaveRequest, error)
	Transition(ctx context.Context, l *LeaveRequest, from domain.LeaveStatus) (bool, error)
	EmployeeIDsOnDate(ctx context.Context, date time.Time, statuses []domain.LeaveStatus, employeeIDs []uuid.UUID) ([]uuid.UUID, error)
}

type employeeIDRow struct {
	EmployeeID uuid.UUID
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Exists(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("date = ?", domain.DateOf(date)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]LeaveRequest, error) {
	q := r.conn(ctx).Model(&LeaveRequest{})
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", domain.DateOf(*f.Date))
	}

	var leaves []LeaveRequest
	err := q.
		Order("date ASC").
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

// Transition writes the decision fields of l only while the stored status
// still equals from. It reports false when another decision got there first.
func (r *repository) Transition(ctx context.Context, l *LeaveRequest, from domain.LeaveStatus) (bool, error) {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, from).
		Updates(map[string]any{
			"status":           l.Status,
			"decision_by":      l.DecisionBy,
			"decision_at":      l.DecisionAt,
			"decision_comment": l.DecisionComment,
			"updated_at":       l.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// EmployeeIDsOnDate returns which of employeeIDs hold a leave on exactly date
// in one of statuses, ordered by employee id.
func (r *repository) EmployeeIDsOnDate(ctx context.Context, date time.Time, statuses []domain.LeaveStatus, employeeIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(statuses) == 0 || len(employeeIDs) == 0 {
		return nil, nil
	}

	var rows []employeeIDRow
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Distinct("employee_id").
		Where("date = ?", domain.DateOf(date)).
		Where("status IN ?", statuses).
		Where("employee_id IN ?", employeeIDs).
		Order("employee_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.EmployeeID
	}
	return ids, nil
}
