package project

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(200);not null"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index:idx_projects_customer"`
	StartDate  time.Time  `gorm:"type:date;not null"`
	EndDate    *time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Project) TableName() string {
	return "projects"
}

// Assignment links an employee to a project for the project's whole period.
type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_project_assignments_employee_project"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_project_assignments_employee_project;index:idx_project_assignments_project"`
	CreatedAt  time.Time
}

func (Assignment) TableName() string {
	return "project_assignments"
}

// AssignedEmployee is a row of a project's assignment list.
type AssignedEmployee struct {
	EmployeeID   uuid.UUID
	EmployeeName string
}
