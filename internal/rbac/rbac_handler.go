package rbac

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/jyhens/Layer2-Application/internal/shared/response"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Enforce answers whether the caller's role may perform the given action.
func (h *Handler) Enforce(c *gin.Context) {
	caller, ok := contextutil.GetCaller(c.Request.Context())
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     caller.Role,
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	})
	if err != nil {
		h.logger.Error("rbac enforce request failed", zap.Error(err))
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Role:    caller.Role.String(),
		Allowed: allowed,
	}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	caller, ok := contextutil.GetCaller(c.Request.Context())
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	perms, err := h.service.Permissions(caller.Role)
	if err != nil {
		h.logger.Error("rbac permissions request failed", zap.Error(err))
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{
		Role:        caller.Role.String(),
		Permissions: perms,
	}, nil)
}
