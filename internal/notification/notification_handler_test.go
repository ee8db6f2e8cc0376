package notification_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/notification"
	notificationerrors "github.com/jyhens/Layer2-Application/internal/notification/errors"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	notification.Service
	gotQuery notification.ListQuery
	gotIDs   []string
	listErr  error
}

func (s *stubService) List(_ context.Context, _ domain.Caller, q notification.ListQuery) ([]notification.NotificationResponse, error) {
	s.gotQuery = q
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []notification.NotificationResponse{}, nil
}

func (s *stubService) MarkRead(_ context.Context, _ domain.Caller, req notification.MarkReadRequest) (int, error) {
	s.gotIDs = req.IDs
	return len(req.IDs), nil
}

func newRouter(h *notification.Handler, caller *domain.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			c.Request = c.Request.WithContext(contextutil.WithCaller(c.Request.Context(), *caller))
		}
		c.Next()
	})
	r.GET("/notifications", h.List)
	r.POST("/notifications/mark-read", h.MarkRead)
	return r
}

func TestNotificationHandler_ListRequiresCaller(t *testing.T) {
	r := newRouter(notification.NewHandler(&stubService{}), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationHandler_ListBindsQuery(t *testing.T) {
	caller := domain.Caller{EmployeeID: uuid.New(), Role: domain.RoleAdmin}
	svc := &stubService{}
	r := newRouter(notification.NewHandler(svc), &caller)
	target := uuid.NewString()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?user_id="+target+"&only_unread=true", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, target, svc.gotQuery.UserID)
	assert.True(t, svc.gotQuery.OnlyUnread)
}

func TestNotificationHandler_ListForbidden(t *testing.T) {
	caller := domain.Caller{EmployeeID: uuid.New(), Role: domain.RoleEmployee}
	r := newRouter(notification.NewHandler(&stubService{listErr: notificationerrors.ErrOtherUserForbidden}), &caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?user_id="+uuid.NewString(), nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	caller := domain.Caller{EmployeeID: uuid.New(), Role: domain.RoleEmployee}
	svc := &stubService{}
	r := newRouter(notification.NewHandler(svc), &caller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notifications/mark-read", strings.NewReader(`{"ids":["a","b"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"marked":2}}`, w.Body.String())
	assert.Equal(t, []string{"a", "b"}, svc.gotIDs)
}
