package domain

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleApprover Role = "APPROVER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleApprover, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanDecide reports whether the role may approve or reject leave requests.
func (r Role) CanDecide() bool {
	return r == RoleApprover || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

type LeaveStatus string

const (
	LeaveStatusRequested LeaveStatus = "REQUESTED"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
)

func (s LeaveStatus) String() string {
	return string(s)
}

// Caller is the authenticated employee on whose behalf an operation runs.
// Role and Name always come from the employee directory.
type Caller struct {
	EmployeeID uuid.UUID
	Name       string
	Role       Role
}

func (c Caller) IsZero() bool {
	return c.EmployeeID == uuid.Nil
}
