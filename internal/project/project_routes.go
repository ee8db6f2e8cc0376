package project

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
	projects := r.Group("/projects")
	{
		projects.GET("",
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.GetAll,
		)
		projects.GET("/:id",
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.GetById,
		)
		projects.POST("",
			middleware.RBACAuthorize(rbacService, "project", "create"),
			handler.Create,
		)
		projects.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "project", "update"),
			handler.Update,
		)
		projects.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "project", "delete"),
			handler.Delete,
		)

		projects.GET("/:id/assignments",
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.GetAssignments,
		)
		projects.POST("/:id/assignments",
			middleware.RBACAuthorize(rbacService, "project", "assign"),
			handler.Assign,
		)
		projects.DELETE("/:id/assignments/:employee_id",
			middleware.RBACAuthorize(rbacService, "project", "assign"),
			handler.Unassign,
		)
	}
}
