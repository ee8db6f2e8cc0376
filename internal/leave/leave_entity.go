package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
)

// LeaveRequest is one day of leave for one employee. At most one exists per
// (employee, date).
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_requests_employee_date,priority:1"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_requests_employee_date,priority:2;index:idx_leave_requests_date_status,priority:1"`

	Status domain.LeaveStatus `gorm:"type:varchar(20);not null;default:'REQUESTED';index:idx_leave_requests_date_status,priority:2"`

	DecisionBy      *uuid.UUID `gorm:"type:uuid"`
	DecisionAt      *time.Time
	DecisionComment *string    `gorm:"type:text"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Filter narrows a listing. Nil fields match everything.
type Filter struct {
	EmployeeID *uuid.UUID
	Date       *time.Time
}
