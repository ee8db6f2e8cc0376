package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/middleware"
	"github.com/jyhens/Layer2-Application/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("",
			middleware.RBACAuthorize(rbacService, "notification", "read"),
			handler.List,
		)
		notifications.POST("/mark-read",
			middleware.RBACAuthorize(rbacService, "notification", "update"),
			handler.MarkRead,
		)
	}
}
