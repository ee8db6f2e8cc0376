package leave

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
	leaves := r.Group("/leaves")
	{
		leaves.GET("",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetAll,
		)
		leaves.GET("/:id",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetById,
		)
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Create,
		)
		leaves.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "leave", "reject"),
			handler.Reject,
		)
	}
}
