package leave

import (
	"time"

	"github.com/jyhens/Layer2-Application/internal/conflict"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
}

type RejectLeaveRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type ListQuery struct {
	EmployeeID string `form:"employee_id"`
	Date       string `form:"date"`
}

type LeaveResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Date            string     `json:"date"`
	Status          string     `json:"status"`
	DecisionBy      *string    `json:"decision_by"`
	DecisionAt      *time.Time `json:"decision_at"`
	DecisionComment *string    `json:"decision_comment"`
	CreatedBy       *string    `json:"created_by,omitempty"`
	WorkingDay      *bool      `json:"working_day,omitempty"`
}

type LeaveWithConflictsResponse struct {
	Leave         LeaveResponse   `json:"leave"`
	ConflictHints []conflict.Hint `json:"conflict_hints"`
}
