// Package conflict computes which teammates are already away on a date.
//
// A teammate is anyone else assigned to a project that is active for the
// requester on the leave date. Results are advisory and never block a
// workflow step.
package conflict

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"go.uber.org/zap"
)

type Policy int

const (
	// PolicyApprovedOnly counts only approved absences. Used when a request is created.
	PolicyApprovedOnly Policy = iota + 1
	// PolicyApprovedAndRequested also counts pending requests. Used when approving.
	PolicyApprovedAndRequested
)

func (p Policy) Statuses() []domain.LeaveStatus {
	if p == PolicyApprovedAndRequested {
		return []domain.LeaveStatus{domain.LeaveStatusApproved, domain.LeaveStatusRequested}
	}
	return []domain.LeaveStatus{domain.LeaveStatusApproved}
}

// TeamMember pairs an assigned employee with one of their projects.
type TeamMember struct {
	ProjectID    uuid.UUID
	ProjectName  string
	EmployeeID   uuid.UUID
	EmployeeName string
}

type AssignmentIndex interface {
	ActiveProjectIDs(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]uuid.UUID, error)
	TeamAssignments(ctx context.Context, projectIDs []uuid.UUID, excludeEmployeeID uuid.UUID) ([]TeamMember, error)
}

type Ledger interface {
	EmployeeIDsOnDate(ctx context.Context, date time.Time, statuses []domain.LeaveStatus, employeeIDs []uuid.UUID) ([]uuid.UUID, error)
}

type Employee struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
}

type Hint struct {
	ProjectID   uuid.UUID  `json:"project_id"`
	ProjectName string     `json:"project_name"`
	Employees   []Employee `json:"employees"`
}

type Resolver interface {
	Compute(ctx context.Context, requesterID uuid.UUID, date time.Time, policy Policy) ([]Hint, error)
}

type resolver struct {
	index  AssignmentIndex
	ledger Ledger
	logger *zap.Logger
}

func NewResolver(index AssignmentIndex, ledger Ledger, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("conflict.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("conflict.resolver")
	}
	return &resolver{index: index, ledger: ledger, logger: l}
}

// Compute returns one hint per project that has at least one teammate absent
// on date. Hints keep the order in which the index reports team assignments.
// The result is never nil.
func (r *resolver) Compute(ctx context.Context, requesterID uuid.UUID, date time.Time, policy Policy) ([]Hint, error) {
	hints := []Hint{}
	day := domain.DateOf(date)

	projectIDs, err := r.index.ActiveProjectIDs(ctx, requesterID, day)
	if err != nil {
		r.logger.Error("load active projects failed",
			zap.String("employee_id", requesterID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if len(projectIDs) == 0 {
		return hints, nil
	}

	team, err := r.index.TeamAssignments(ctx, projectIDs, requesterID)
	if err != nil {
		r.logger.Error("load team assignments failed",
			zap.String("employee_id", requesterID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	teamIDs := make([]uuid.UUID, 0, len(team))
	seen := make(map[uuid.UUID]struct{}, len(team))
	for _, m := range team {
		if m.EmployeeID == requesterID {
			continue
		}
		if _, ok := seen[m.EmployeeID]; ok {
			continue
		}
		seen[m.EmployeeID] = struct{}{}
		teamIDs = append(teamIDs, m.EmployeeID)
	}
	if len(teamIDs) == 0 {
		return hints, nil
	}

	absentIDs, err := r.ledger.EmployeeIDsOnDate(ctx, day, policy.Statuses(), teamIDs)
	if err != nil {
		r.logger.Error("load absences failed",
			zap.String("date", domain.FormatDate(day)),
			zap.Error(err),
		)
		return nil, err
	}
	if len(absentIDs) == 0 {
		return hints, nil
	}

	absent := make(map[uuid.UUID]struct{}, len(absentIDs))
	for _, id := range absentIDs {
		if id != requesterID {
			absent[id] = struct{}{}
		}
	}

	byProject := make(map[uuid.UUID]int)
	listed := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, m := range team {
		if _, ok := absent[m.EmployeeID]; !ok {
			continue
		}
		idx, ok := byProject[m.ProjectID]
		if !ok {
			idx = len(hints)
			byProject[m.ProjectID] = idx
			listed[m.ProjectID] = make(map[uuid.UUID]struct{})
			hints = append(hints, Hint{
				ProjectID:   m.ProjectID,
				ProjectName: m.ProjectName,
				Employees:   []Employee{},
			})
		}
		if _, dup := listed[m.ProjectID][m.EmployeeID]; dup {
			continue
		}
		listed[m.ProjectID][m.EmployeeID] = struct{}{}
		hints[idx].Employees = append(hints[idx].Employees, Employee{
			EmployeeID:   m.EmployeeID,
			EmployeeName: m.EmployeeName,
		})
	}

	r.logger.Debug("conflicts computed",
		zap.String("employee_id", requesterID.String()),
		zap.String("date", domain.FormatDate(day)),
		zap.Int("projects", len(hints)),
	)
	return hints, nil
}
