package leave_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/conflict"
	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/leave"
	leaveerrors "github.com/jyhens/Layer2-Application/internal/leave/errors"
	"github.com/jyhens/Layer2-Application/internal/notification"
	"github.com/jyhens/Layer2-Application/internal/project"
	"github.com/jyhens/Layer2-Application/internal/shared/testdb"
	"github.com/jyhens/Layer2-Application/internal/workday"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// WorkflowSuite runs the leave workflow against sqlite with the real
// project index, ledger and inbox.
type WorkflowSuite struct {
	suite.Suite

	db       *gorm.DB
	projects project.Repository
	leaves   leave.Repository
	inbox    notification.Repository
	service  leave.Service

	approver domain.Caller
	e        uuid.UUID
	m        uuid.UUID
	p        uuid.UUID
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	db, sqlDB := testdb.Open(s.T(),
		&employee.Employee{},
		&customer.Customer{},
		&project.Project{},
		&project.Assignment{},
		&leave.LeaveRequest{},
		&notification.Notification{},
	)
	s.db = db
	s.projects = project.NewRepository(db)
	s.leaves = leave.NewRepository(db)
	s.inbox = notification.NewRepository(db)

	resolver := conflict.NewResolver(s.projects, s.leaves)
	s.service = leave.NewService(sqlDB, s.leaves, resolver, notification.NewDirectNotifier(s.inbox), workday.New("DE"))

	s.approver = domain.Caller{EmployeeID: s.employee("Peter", domain.RoleApprover), Name: "Peter", Role: domain.RoleApprover}
	s.e = s.employee("Eren", domain.RoleEmployee)
	s.m = s.employee("Mia", domain.RoleEmployee)

	c := customer.Customer{ID: uuid.New(), Name: "Customer A"}
	s.Require().NoError(db.Create(&c).Error)

	start, _ := domain.ParseDate("2025-01-01")
	end, _ := domain.ParseDate("2025-12-31")
	p := project.Project{ID: uuid.New(), Name: "Project P", CustomerID: c.ID, StartDate: start, EndDate: &end}
	s.Require().NoError(s.projects.Create(context.Background(), &p))
	s.p = p.ID
}

func (s *WorkflowSuite) employee(name string, role domain.Role) uuid.UUID {
	e := employee.Employee{ID: uuid.New(), Name: name, Role: role}
	s.Require().NoError(s.db.Create(&e).Error)
	return e.ID
}

func (s *WorkflowSuite) assignBoth() {
	for _, id := range []uuid.UUID{s.e, s.m} {
		s.Require().NoError(s.projects.Assign(context.Background(), &project.Assignment{
			ID: uuid.New(), EmployeeID: id, ProjectID: s.p,
		}))
	}
}

func (s *WorkflowSuite) create(employeeID uuid.UUID, date string) leave.LeaveWithConflictsResponse {
	resp, err := s.service.Create(context.Background(), domain.Caller{}, leave.CreateLeaveRequest{
		EmployeeID: employeeID.String(),
		Date:       date,
	})
	s.Require().NoError(err)
	return resp
}

func (s *WorkflowSuite) approve(id string) leave.LeaveWithConflictsResponse {
	resp, err := s.service.Approve(context.Background(), s.approver, id)
	s.Require().NoError(err)
	return resp
}

func (s *WorkflowSuite) TestScenarioA_ApprovedTeammateOnSameDay() {
	s.assignBoth()
	mLeave := s.create(s.m, "2025-06-10")
	s.approve(mLeave.Leave.ID)

	resp := s.create(s.e, "2025-06-10")

	s.Require().Len(resp.ConflictHints, 1)
	hint := resp.ConflictHints[0]
	s.Equal(s.p, hint.ProjectID)
	s.Equal("Project P", hint.ProjectName)
	s.Equal([]conflict.Employee{{EmployeeID: s.m, EmployeeName: "Mia"}}, hint.Employees)
	s.Require().NotNil(resp.Leave.WorkingDay)
	s.True(*resp.Leave.WorkingDay)
}

func (s *WorkflowSuite) TestScenarioB_DifferentDay() {
	s.assignBoth()
	mLeave := s.create(s.m, "2025-06-11")
	s.approve(mLeave.Leave.ID)

	resp := s.create(s.e, "2025-06-10")

	s.NotNil(resp.ConflictHints)
	s.Empty(resp.ConflictHints)
}

func (s *WorkflowSuite) TestScenarioC_NoAssignments() {
	resp := s.create(s.e, "2025-03-03")

	s.Empty(resp.ConflictHints)
	s.Equal("REQUESTED", resp.Leave.Status)
}

func (s *WorkflowSuite) TestScenarioD_Duplicate() {
	s.create(s.e, "2025-06-10")

	_, err := s.service.Create(context.Background(), domain.Caller{}, leave.CreateLeaveRequest{
		EmployeeID: s.e.String(),
		Date:       "2025-06-10",
	})
	s.ErrorIs(err, leaveerrors.ErrDuplicateLeave)

	var count int64
	s.Require().NoError(s.db.Model(&leave.LeaveRequest{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *WorkflowSuite) TestScenarioE_RequestedCountsOnlyAtApproval() {
	s.assignBoth()
	s.create(s.m, "2025-06-12")

	resp := s.create(s.e, "2025-06-12")
	s.Empty(resp.ConflictHints, "pending teammate leave is ignored at creation")

	approved := s.approve(resp.Leave.ID)
	s.Require().Len(approved.ConflictHints, 1)
	s.Equal(s.p, approved.ConflictHints[0].ProjectID)
	s.Equal(s.m, approved.ConflictHints[0].Employees[0].EmployeeID)
	s.Equal("APPROVED", approved.Leave.Status)
}

func (s *WorkflowSuite) TestProjectOutsidePeriodIsIgnored() {
	s.assignBoth()
	mLeave := s.create(s.m, "2026-01-05")
	s.approve(mLeave.Leave.ID)

	resp := s.create(s.e, "2026-01-05")
	s.Empty(resp.ConflictHints)
}

func (s *WorkflowSuite) TestDecisionsAreTerminalAndNotified() {
	resp := s.create(s.e, "2025-06-10")

	comment := " no capacity "
	rejected, err := s.service.Reject(context.Background(), s.approver, resp.Leave.ID, leave.RejectLeaveRequest{Comment: &comment})
	s.Require().NoError(err)
	s.Equal("REJECTED", rejected.Status)

	_, err = s.service.Approve(context.Background(), s.approver, resp.Leave.ID)
	s.ErrorIs(err, leaveerrors.ErrRejectedCannotBeApproved)

	stored, err := s.service.GetByID(context.Background(), resp.Leave.ID)
	s.Require().NoError(err)
	s.Equal("REJECTED", stored.Status)
	s.Require().NotNil(stored.DecisionComment)
	s.Equal("no capacity", *stored.DecisionComment)
	s.Equal(s.approver.EmployeeID.String(), *stored.DecisionBy)

	inbox, err := s.inbox.ListByUser(context.Background(), s.e, false, 10)
	s.Require().NoError(err)
	s.Require().Len(inbox, 2)
	kinds := []notification.Kind{inbox[0].Kind, inbox[1].Kind}
	s.ElementsMatch([]notification.Kind{notification.KindSubmitted, notification.KindRejected}, kinds)
}

func (s *WorkflowSuite) TestSelfApprovalRefused() {
	resp, err := s.service.Create(context.Background(), s.approver, leave.CreateLeaveRequest{
		EmployeeID: s.approver.EmployeeID.String(),
		Date:       "2025-06-10",
	})
	s.Require().NoError(err)

	_, err = s.service.Approve(context.Background(), s.approver, resp.Leave.ID)
	s.ErrorIs(err, leaveerrors.ErrSelfDecision)
}

func (s *WorkflowSuite) TestWeekendFlag() {
	resp := s.create(s.e, "2025-06-14")
	s.Require().NotNil(resp.Leave.WorkingDay)
	s.False(*resp.Leave.WorkingDay)
}
