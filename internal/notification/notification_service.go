package notification

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	notificationerrors "github.com/jyhens/Layer2-Application/internal/notification/errors"
	"go.uber.org/zap"
)

// ListLimit caps how many inbox entries a single listing returns.
const ListLimit = 200

type Service interface {
	List(ctx context.Context, caller domain.Caller, q ListQuery) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, caller domain.Caller, req MarkReadRequest) (int, error)
	Store(ctx context.Context, n Notification) (bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// List returns the caller's inbox, newest first. Admins may pass another
// user id.
func (s *service) List(ctx context.Context, caller domain.Caller, q ListQuery) ([]NotificationResponse, error) {
	userID := caller.EmployeeID
	if q.UserID != "" {
		requested, err := uuid.Parse(q.UserID)
		if err != nil {
			return nil, notificationerrors.ErrInvalidUserID
		}
		if requested != uuid.Nil && requested != caller.EmployeeID {
			if !caller.Role.IsAdmin() {
				return nil, notificationerrors.ErrOtherUserForbidden
			}
			userID = requested
		}
	}

	items, err := s.repo.ListByUser(ctx, userID, q.OnlyUnread, ListLimit)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	res := make([]NotificationResponse, len(items))
	for i, n := range items {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

// MarkRead flags the given entries as read and returns how many matched.
// Unknown ids are ignored. A non-admin touching someone else's entry fails
// the whole call.
func (s *service) MarkRead(ctx context.Context, caller domain.Caller, req MarkReadRequest) (int, error) {
	if len(req.IDs) == 0 {
		return 0, notificationerrors.ErrIDsRequired
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return 0, notificationerrors.ErrInvalidNotificationID
		}
		ids = append(ids, id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	items, err := qtx.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	found := make([]uuid.UUID, len(items))
	for i, n := range items {
		if n.UserID != caller.EmployeeID && !caller.Role.IsAdmin() {
			s.logger.Warn("mark read refused",
				zap.String("actor_id", caller.EmployeeID.String()),
				zap.String("notification_id", n.ID.String()),
			)
			return 0, notificationerrors.ErrMarkOthersForbidden
		}
		found[i] = n.ID
	}

	if err := qtx.MarkRead(ctx, found); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(found), nil
}

// Store writes an inbox entry delivered by the consumer. It returns false
// when the entry was already stored.
func (s *service) Store(ctx context.Context, n Notification) (bool, error) {
	if err := s.repo.Create(ctx, &n); err != nil {
		if isDuplicate(err) {
			s.logger.Info("notification already stored", zap.String("notification_id", n.ID.String()))
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:             n.ID.String(),
		UserID:         n.UserID.String(),
		LeaveRequestID: n.LeaveRequestID.String(),
		Kind:           string(n.Kind),
		Date:           domain.FormatDate(n.Date),
		ActorName:      n.ActorName,
		Comment:        n.Comment,
		CreatedAt:      n.CreatedAt,
		IsRead:         n.IsRead,
	}
	if n.ActorID != nil {
		v := n.ActorID.String()
		resp.ActorID = &v
	}
	return resp
}
