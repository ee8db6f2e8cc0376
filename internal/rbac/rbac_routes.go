package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	g := r.Group("/rbac")
	{
		g.POST("/enforce", handler.Enforce)
		g.GET("/permissions", handler.Permissions)
	}
}
