package employee

import (
	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/middleware"
	"github.com/jyhens/Layer2-Application/internal/rbac"
)

// RegisterRoutes expects r to already authenticate the caller.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)
		employees.GET("/options",
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetOptions,
		)
		employees.GET("/:id",
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetById,
		)
		employees.POST("",
			middleware.RateLimitByCaller(0.5, 5),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Update,
		)
		employees.PUT("/:id/role",
			middleware.RBACAuthorize(rbacService, "employee", "update_role"),
			handler.UpdateRole,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByCaller(0.1, 2),
			middleware.RBACAuthorize(rbacService, "employee", "delete"),
			handler.Delete,
		)
	}
}
