package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize checks the authenticated caller's role against resource:action.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := contextutil.GetCaller(c.Request.Context())
		if !ok {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     caller.Role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !allowed {
			abortWithError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
