package customer

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
	customers := r.Group("/customers")
	{
		customers.GET("",
			middleware.RBACAuthorize(rbacService, "customer", "read"),
			handler.GetAll,
		)
		customers.GET("/:id",
			middleware.RBACAuthorize(rbacService, "customer", "read"),
			handler.GetById,
		)
		customers.POST("",
			middleware.RBACAuthorize(rbacService, "customer", "create"),
			handler.Create,
		)
		customers.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "customer", "update"),
			handler.Update,
		)
		customers.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "customer", "delete"),
			handler.Delete,
		)
	}
}
