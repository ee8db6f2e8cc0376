package leave_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/leave"
	"github.com/jyhens/Layer2-Application/internal/shared/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(v)
	require.NoError(t, err)
	return d
}

func setupRepo(t *testing.T) (leave.Repository, *gorm.DB) {
	t.Helper()
	db, _ := testdb.Open(t, &employee.Employee{}, &leave.LeaveRequest{})
	return leave.NewRepository(db), db
}

func seedEmployee(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	e := employee.Employee{ID: uuid.New(), Name: name, Role: domain.RoleEmployee}
	require.NoError(t, db.Create(&e).Error)
	return e.ID
}

func seedLeave(t *testing.T, repo leave.Repository, employeeID uuid.UUID, date string, status domain.LeaveStatus) *leave.LeaveRequest {
	t.Helper()
	l := &leave.LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       mustDate(t, date),
		Status:     status,
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestLeaveRepository_ExistsAndUniqueness(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	e := seedEmployee(t, db, "Alice")

	ok, err := repo.EmployeeExists(ctx, e)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.EmployeeExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	seedLeave(t, repo, e, "2025-06-10", domain.LeaveStatusRequested)

	ok, err = repo.Exists(ctx, e, mustDate(t, "2025-06-10"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, e, mustDate(t, "2025-06-11"))
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Create(ctx, &leave.LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: e,
		Date:       mustDate(t, "2025-06-10"),
		Status:     domain.LeaveStatusRequested,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestLeaveRepository_FindAll(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	alice := seedEmployee(t, db, "Alice")
	bob := seedEmployee(t, db, "Bob")

	seedLeave(t, repo, alice, "2025-06-12", domain.LeaveStatusRequested)
	seedLeave(t, repo, alice, "2025-06-10", domain.LeaveStatusApproved)
	seedLeave(t, repo, bob, "2025-06-10", domain.LeaveStatusRejected)

	all, err := repo.FindAll(ctx, leave.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-06-10", domain.FormatDate(all[0].Date))
	assert.Equal(t, "2025-06-12", domain.FormatDate(all[2].Date))

	mine, err := repo.FindAll(ctx, leave.Filter{EmployeeID: &alice})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	day := mustDate(t, "2025-06-10")
	onDay, err := repo.FindAll(ctx, leave.Filter{Date: &day})
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	both, err := repo.FindAll(ctx, leave.Filter{EmployeeID: &bob, Date: &day})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, domain.LeaveStatusRejected, both[0].Status)
}

func TestLeaveRepository_Transition(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	e := seedEmployee(t, db, "Alice")
	decider := seedEmployee(t, db, "Peter")
	l := seedLeave(t, repo, e, "2025-06-10", domain.LeaveStatusRequested)

	now := time.Now().UTC().Truncate(time.Second)
	approved := *l
	approved.Status = domain.LeaveStatusApproved
	approved.DecisionBy = &decider
	approved.DecisionAt = &now
	approved.UpdatedAt = now

	ok, err := repo.Transition(ctx, &approved, domain.LeaveStatusRequested)
	require.NoError(t, err)
	assert.True(t, ok)

	rejected := *l
	comment := "too late"
	rejected.Status = domain.LeaveStatusRejected
	rejected.DecisionComment = &comment
	ok, err = repo.Transition(ctx, &rejected, domain.LeaveStatusRequested)
	require.NoError(t, err)
	assert.False(t, ok, "second decision must not apply")

	stored, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, stored.Status)
	require.NotNil(t, stored.DecisionBy)
	assert.Equal(t, decider, *stored.DecisionBy)
	assert.Nil(t, stored.DecisionComment)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLeaveRepository_EmployeeIDsOnDate(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	approvedA := seedEmployee(t, db, "A")
	approvedB := seedEmployee(t, db, "B")
	pending := seedEmployee(t, db, "C")
	rejected := seedEmployee(t, db, "D")
	otherDay := seedEmployee(t, db, "E")
	outsider := seedEmployee(t, db, "F")

	seedLeave(t, repo, approvedA, "2025-06-10", domain.LeaveStatusApproved)
	seedLeave(t, repo, approvedB, "2025-06-10", domain.LeaveStatusApproved)
	seedLeave(t, repo, pending, "2025-06-10", domain.LeaveStatusRequested)
	seedLeave(t, repo, rejected, "2025-06-10", domain.LeaveStatusRejected)
	seedLeave(t, repo, otherDay, "2025-06-11", domain.LeaveStatusApproved)
	seedLeave(t, repo, outsider, "2025-06-10", domain.LeaveStatusApproved)

	team := []uuid.UUID{approvedA, approvedB, pending, rejected, otherDay}
	day := mustDate(t, "2025-06-10")

	got, err := repo.EmployeeIDsOnDate(ctx, day, []domain.LeaveStatus{domain.LeaveStatusApproved}, team)
	require.NoError(t, err)
	want := []uuid.UUID{approvedA, approvedB}
	sort.Slice(want, func(i, j int) bool { return want[i].String() < want[j].String() })
	assert.Equal(t, want, got)

	got, err = repo.EmployeeIDsOnDate(ctx, day, []domain.LeaveStatus{domain.LeaveStatusApproved, domain.LeaveStatusRequested}, team)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{approvedA, approvedB, pending}, got)

	got, err = repo.EmployeeIDsOnDate(ctx, day, []domain.LeaveStatus{domain.LeaveStatusApproved}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
