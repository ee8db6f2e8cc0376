// Package seed loads the demo directory used for local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/project"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	AdminID     = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaa1")
	PeterID     = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbb1")
	SofiaID     = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbb2")
	AliceID     = uuid.MustParse("cccccccc-cccc-cccc-cccc-ccccccccccc1")
	BobID       = uuid.MustParse("cccccccc-cccc-cccc-cccc-ccccccccccc2")
	CarlosID    = uuid.MustParse("cccccccc-cccc-cccc-cccc-ccccccccccc3")
	DariaID     = uuid.MustParse("cccccccc-cccc-cccc-cccc-ccccccccccc4")
	ErenID      = uuid.MustParse("cccccccc-cccc-cccc-cccc-ccccccccccc5")
	FatimaID    = uuid.MustParse("cccccccc-cccc-cccc-cccc-ccccccccccc6")
	CustomerAID = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddd01")
	CustomerBID = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddd02")
	ProjectA1ID = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeee1")
	ProjectB1ID = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeee2")
	ProjectB2ID = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeee3")
)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func employees() []employee.Employee {
	person := func(id uuid.UUID, name, title string, role domain.Role) employee.Employee {
		return employee.Employee{ID: id, Name: name, JobTitle: ptr(title), Role: role}
	}
	return []employee.Employee{
		person(AdminID, "Amira Admin", "Admin", domain.RoleAdmin),
		person(PeterID, "Peter Product", "Approver", domain.RoleApprover),
		person(SofiaID, "Sofia Supervisor", "Approver", domain.RoleApprover),
		person(AliceID, "Alice Nguyen", "Developer", domain.RoleEmployee),
		person(BobID, "Bob Meier", "Developer", domain.RoleEmployee),
		person(CarlosID, "Carlos Diaz", "Developer", domain.RoleEmployee),
		person(DariaID, "Daria Novak", "Developer", domain.RoleEmployee),
		person(ErenID, "Eren Kaya", "Developer", domain.RoleEmployee),
		person(FatimaID, "Fatima Ali", "Developer", domain.RoleEmployee),
	}
}

func projects() []project.Project {
	return []project.Project{
		{ID: ProjectA1ID, Name: "Project A1", CustomerID: CustomerAID, StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 12, 31))},
		{ID: ProjectB1ID, Name: "Project B1", CustomerID: CustomerBID, StartDate: day(2025, 3, 1), EndDate: ptr(day(2025, 11, 30))},
		{ID: ProjectB2ID, Name: "Project B2", CustomerID: CustomerBID, StartDate: day(2025, 9, 1), EndDate: ptr(day(2026, 3, 31))},
	}
}

// assignments gives every project three developers; Bob, Daria and Fatima
// also share Project B2 with their other team.
func assignments() []project.Assignment {
	pairs := []struct{ projectID, employeeID uuid.UUID }{
		{ProjectA1ID, AliceID}, {ProjectA1ID, BobID}, {ProjectA1ID, CarlosID},
		{ProjectB1ID, DariaID}, {ProjectB1ID, ErenID}, {ProjectB1ID, FatimaID},
		{ProjectB2ID, BobID}, {ProjectB2ID, DariaID}, {ProjectB2ID, FatimaID},
	}
	out := make([]project.Assignment, len(pairs))
	for i, p := range pairs {
		out[i] = project.Assignment{ID: uuid.New(), ProjectID: p.projectID, EmployeeID: p.employeeID}
	}
	return out
}

// Run inserts the demo data unless the directory already has employees.
// It reports whether anything was written.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) (bool, error) {
	log := logger.Named("seed")

	var count int64
	if err := db.WithContext(ctx).Model(&employee.Employee{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		log.Info("demo seed skipped, directory not empty", zap.Int64("employees", count))
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ptr(employees())).Error; err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
		customers := []customer.Customer{
			{ID: CustomerAID, Name: "Customer A"},
			{ID: CustomerBID, Name: "Customer B"},
		}
		if err := tx.Create(&customers).Error; err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
		if err := tx.Create(ptr(projects())).Error; err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
		if err := tx.Create(ptr(assignments())).Error; err != nil {
			return fmt.Errorf("seed assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info("demo seed applied")
	return true, nil
}
