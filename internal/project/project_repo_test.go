package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/project"
	"github.com/jyhens/Layer2-Application/internal/shared/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	repo     project.Repository
	customer customer.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, _ := testdb.Open(t,
		&employee.Employee{},
		&customer.Customer{},
		&project.Project{},
		&project.Assignment{},
	)
	c := customer.Customer{ID: uuid.New(), Name: "Customer A"}
	require.NoError(t, db.Create(&c).Error)
	return &fixture{db: db, repo: project.NewRepository(db), customer: c}
}

func (f *fixture) employee(t *testing.T, name string) uuid.UUID {
	t.Helper()
	e := employee.Employee{ID: uuid.New(), Name: name, Role: domain.RoleEmployee}
	require.NoError(t, f.db.Create(&e).Error)
	return e.ID
}

func (f *fixture) project(t *testing.T, name, start string, end string) uuid.UUID {
	t.Helper()
	p := project.Project{
		ID:         uuid.New(),
		Name:       name,
		CustomerID: f.customer.ID,
		StartDate:  mustDate(t, start),
	}
	if end != "" {
		e := mustDate(t, end)
		p.EndDate = &e
	}
	require.NoError(t, f.repo.Create(context.Background(), &p))
	return p.ID
}

func (f *fixture) assign(t *testing.T, projectID uuid.UUID, employeeIDs ...uuid.UUID) {
	t.Helper()
	for _, id := range employeeIDs {
		require.NoError(t, f.repo.Assign(context.Background(), &project.Assignment{
			ID:         uuid.New(),
			ProjectID:  projectID,
			EmployeeID: id,
		}))
	}
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(v)
	require.NoError(t, err)
	return d
}

func TestProjectRepository_ActiveProjectIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bob := f.employee(t, "Bob")
	a1 := f.project(t, "A1", "2025-01-01", "2025-12-31")
	b2 := f.project(t, "B2", "2025-09-01", "2026-03-31")
	open := f.project(t, "Open", "2025-06-01", "")
	f.assign(t, a1, bob)
	f.assign(t, b2, bob)
	f.assign(t, open, bob)

	ids, err := f.repo.ActiveProjectIDs(ctx, bob, mustDate(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a1}, ids)

	ids, err = f.repo.ActiveProjectIDs(ctx, bob, mustDate(t, "2025-10-15"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a1, b2, open}, ids)

	ids, err = f.repo.ActiveProjectIDs(ctx, bob, mustDate(t, "2025-12-31"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a1, b2, open}, ids, "end date is inclusive")

	ids, err = f.repo.ActiveProjectIDs(ctx, bob, mustDate(t, "2024-12-31"))
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = f.repo.ActiveProjectIDs(ctx, f.employee(t, "Nobody"), mustDate(t, "2025-10-15"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProjectRepository_TeamAssignments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.employee(t, "Alice")
	bob := f.employee(t, "Bob")
	carlos := f.employee(t, "Carlos")
	daria := f.employee(t, "Daria")

	b1 := f.project(t, "B1", "2025-03-01", "2025-11-30")
	a1 := f.project(t, "A1", "2025-01-01", "2025-12-31")
	f.assign(t, a1, carlos, alice, bob)
	f.assign(t, b1, daria, bob)

	team, err := f.repo.TeamAssignments(ctx, []uuid.UUID{a1, b1}, bob)
	require.NoError(t, err)
	require.Len(t, team, 3)

	assert.Equal(t, "A1", team[0].ProjectName)
	assert.Equal(t, "Alice", team[0].EmployeeName)
	assert.Equal(t, alice, team[0].EmployeeID)
	assert.Equal(t, "Carlos", team[1].EmployeeName)
	assert.Equal(t, "B1", team[2].ProjectName)
	assert.Equal(t, b1, team[2].ProjectID)
	assert.Equal(t, daria, team[2].EmployeeID)

	team, err = f.repo.TeamAssignments(ctx, nil, bob)
	require.NoError(t, err)
	assert.Empty(t, team)
}

func TestProjectRepository_Assignments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	eren := f.employee(t, "Eren")
	fatima := f.employee(t, "Fatima")
	p := f.project(t, "B1", "2025-03-01", "2025-11-30")
	f.assign(t, p, fatima, eren)

	err := f.repo.Assign(ctx, &project.Assignment{ID: uuid.New(), ProjectID: p, EmployeeID: eren})
	assert.Error(t, err, "duplicate assignment")

	rows, err := f.repo.FindAssignments(ctx, p)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Eren", rows[0].EmployeeName)
	assert.Equal(t, fatima, rows[1].EmployeeID)

	require.NoError(t, f.repo.Unassign(ctx, p, eren))
	assert.ErrorIs(t, f.repo.Unassign(ctx, p, eren), gorm.ErrRecordNotFound)

	require.NoError(t, f.repo.Delete(ctx, p))
	var remaining int64
	require.NoError(t, f.db.Model(&project.Assignment{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
	assert.ErrorIs(t, f.repo.Delete(ctx, p), gorm.ErrRecordNotFound)
}

func TestProjectRepository_Exists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.repo.CustomerExists(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.repo.EmployeeExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
