package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/conflict"
	"github.com/jyhens/Layer2-Application/internal/domain"
	leaveerrors "github.com/jyhens/Layer2-Application/internal/leave/errors"
	"github.com/jyhens/Layer2-Application/internal/notification"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/jyhens/Layer2-Application/internal/workday"
	"go.uber.org/zap"
)

// Notifier delivers workflow notifications. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, msg notification.Message) error
}

type Service interface {
	Create(ctx context.Context, caller domain.Caller, req CreateLeaveRequest) (LeaveWithConflictsResponse, error)
	GetAll(ctx context.Context, q ListQuery) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, caller domain.Caller, id string) (LeaveWithConflictsResponse, error)
	Reject(ctx context.Context, caller domain.Caller, id string, req RejectLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver conflict.Resolver
	notifier Notifier
	calendar workday.Checker
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	resolver conflict.Resolver,
	notifier Notifier,
	calendar workday.Checker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		notifier: notifier,
		calendar: calendar,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, caller domain.Caller, req CreateLeaveRequest) (LeaveWithConflictsResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil || employeeID == uuid.Nil {
		return LeaveWithConflictsResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	date, err := domain.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return LeaveWithConflictsResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveWithConflictsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("create leave employee check failed", zap.Error(err))
		return LeaveWithConflictsResponse{}, err
	}
	if !exists {
		return LeaveWithConflictsResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	duplicate, err := qtx.Exists(ctx, employeeID, date)
	if err != nil {
		s.logger.Error("create leave duplicate check failed", zap.Error(err))
		return LeaveWithConflictsResponse{}, err
	}
	if duplicate {
		s.logger.Warn("create leave duplicate detected",
			zap.String("employee_id", employeeID.String()),
			zap.String("date", domain.FormatDate(date)),
		)
		return LeaveWithConflictsResponse{}, leaveerrors.ErrDuplicateLeave
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       date,
		Status:     domain.LeaveStatusRequested,
	}
	if !caller.IsZero() {
		createdBy := caller.EmployeeID
		l.CreatedBy = &createdBy
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveWithConflictsResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveWithConflictsResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("date", domain.FormatDate(date)),
	)

	// The request is already stored, so a failed lookup only costs the hints.
	hints, err := s.resolver.Compute(ctx, employeeID, date, conflict.PolicyApprovedOnly)
	if err != nil {
		s.logger.Error("create leave conflict computation failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		hints = []conflict.Hint{}
	}

	s.notify(ctx, notification.Message{
		RecipientID:    l.EmployeeID,
		LeaveRequestID: l.ID,
		Kind:           notification.KindSubmitted,
		Date:           l.Date,
	})

	return LeaveWithConflictsResponse{Leave: s.mapToResponse(*l), ConflictHints: hints}, nil
}

func (s *service) GetAll(ctx context.Context, q ListQuery) ([]LeaveResponse, error) {
	var f Filter
	if v := strings.TrimSpace(q.EmployeeID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
		if id != uuid.Nil {
			f.EmployeeID = &id
		}
	}
	if v := strings.TrimSpace(q.Date); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return nil, leaveerrors.ErrInvalidDateFormat
		}
		f.Date = &d
	}

	leaves, err := s.repo.FindAll(ctx, f)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, err
	}

	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = s.mapToResponse(l)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return s.mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, caller domain.Caller, id string) (LeaveWithConflictsResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", caller.EmployeeID.String()),
	)

	l, err := s.loadForDecision(ctx, caller, id)
	if err != nil {
		return LeaveWithConflictsResponse{}, err
	}

	switch l.Status {
	case domain.LeaveStatusApproved:
		return LeaveWithConflictsResponse{}, leaveerrors.ErrAlreadyApproved
	case domain.LeaveStatusRejected:
		return LeaveWithConflictsResponse{}, leaveerrors.ErrRejectedCannotBeApproved
	}

	// Hints describe the situation the approver decided on, so they are
	// computed before the status changes.
	hints, err := s.resolver.Compute(ctx, l.EmployeeID, l.Date, conflict.PolicyApprovedAndRequested)
	if err != nil {
		return LeaveWithConflictsResponse{}, err
	}

	now := s.now()
	decider := caller.EmployeeID
	l.Status = domain.LeaveStatusApproved
	l.DecisionBy = &decider
	l.DecisionAt = &now
	l.DecisionComment = nil
	l.UpdatedAt = now

	if err := s.transition(ctx, l); err != nil {
		return LeaveWithConflictsResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("actor_id", decider.String()),
		zap.Int("conflicting_projects", len(hints)),
	)

	s.notify(ctx, notification.Message{
		RecipientID:    l.EmployeeID,
		LeaveRequestID: l.ID,
		Kind:           notification.KindApproved,
		Date:           l.Date,
		Actor:          &caller,
	})

	return LeaveWithConflictsResponse{Leave: s.mapToResponse(*l), ConflictHints: hints}, nil
}

func (s *service) Reject(ctx context.Context, caller domain.Caller, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", caller.EmployeeID.String()),
	)

	l, err := s.loadForDecision(ctx, caller, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	switch l.Status {
	case domain.LeaveStatusRejected:
		return LeaveResponse{}, leaveerrors.ErrAlreadyRejected
	case domain.LeaveStatusApproved:
		return LeaveResponse{}, leaveerrors.ErrApprovedCannotBeRejected
	}

	now := s.now()
	decider := caller.EmployeeID
	l.Status = domain.LeaveStatusRejected
	l.DecisionBy = &decider
	l.DecisionAt = &now
	l.DecisionComment = normalizeComment(req.Comment)
	l.UpdatedAt = now

	if err := s.transition(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("actor_id", decider.String()),
	)

	s.notify(ctx, notification.Message{
		RecipientID:    l.EmployeeID,
		LeaveRequestID: l.ID,
		Kind:           notification.KindRejected,
		Date:           l.Date,
		Actor:          &caller,
		Comment:        l.DecisionComment,
	})

	return s.mapToResponse(*l), nil
}

// loadForDecision runs the checks shared by approve and reject, in the order
// callers observe them: role, existence, then self decision.
func (s *service) loadForDecision(ctx context.Context, caller domain.Caller, id string) (*LeaveRequest, error) {
	if !caller.Role.CanDecide() {
		s.logger.Warn("leave decision refused for role",
			zap.String("actor_id", caller.EmployeeID.String()),
			zap.String("role", caller.Role.String()),
		)
		return nil, leaveerrors.ErrDecisionForbidden
	}

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if l.EmployeeID == caller.EmployeeID {
		return nil, leaveerrors.ErrSelfDecision
	}
	return l, nil
}

func (s *service) transition(ctx context.Context, l *LeaveRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave transition begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	ok, err := s.repo.WithTx(tx).Transition(ctx, l, domain.LeaveStatusRequested)
	if err != nil {
		s.logger.Error("leave transition persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	if !ok {
		s.logger.Warn("leave transition lost race",
			zap.String("leave_id", l.ID.String()),
			zap.String("target_status", l.Status.String()),
		)
		return leaveerrors.ErrConcurrentDecision
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave transition commit failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) notify(ctx context.Context, msg notification.Message) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Warn("leave notification failed",
			zap.String("leave_id", msg.LeaveRequestID.String()),
			zap.String("kind", string(msg.Kind)),
			zap.Error(err),
		)
	}
}

func normalizeComment(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func (s *service) mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		Date:            domain.FormatDate(l.Date),
		Status:          l.Status.String(),
		DecisionAt:      l.DecisionAt,
		DecisionComment: l.DecisionComment,
	}
	if l.DecisionBy != nil {
		v := l.DecisionBy.String()
		resp.DecisionBy = &v
	}
	if l.CreatedBy != nil {
		v := l.CreatedBy.String()
		resp.CreatedBy = &v
	}
	if s.calendar != nil {
		working := s.calendar.IsWorkday(l.Date)
		resp.WorkingDay = &working
	}
	return resp
}
