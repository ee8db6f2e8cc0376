package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/jyhens/Layer2-Application/internal/shared/config"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/jyhens/Layer2-Application/internal/shared/response"
	"go.uber.org/zap"
)

const EmployeeIDHeader = "X-Employee-Id"

var (
	ErrTokenMissing  = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrTokenInvalid  = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New(apperror.CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
	ErrUnknownCaller = apperror.New(apperror.CodeUnauthorized, "Caller is not a known employee", http.StatusUnauthorized)
)

// CallerResolver turns an authenticated employee id into its directory entry.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, id uuid.UUID) (domain.Caller, error)
}

type AuthConfig struct {
	Mode      string
	JWTSecret string
}

// AuthMiddleware identifies the caller and stores it in the request context.
// Only the employee id is taken from the request; name and role always come
// from the resolver.
func AuthMiddleware(resolver CallerResolver, cfg AuthConfig, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.auth")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.auth")
	}

	return func(c *gin.Context) {
		var (
			id  uuid.UUID
			err error
		)
		if cfg.Mode == config.AuthModeHeader {
			id, err = employeeIDFromHeader(c)
		} else {
			id, err = employeeIDFromToken(c, cfg.JWTSecret)
		}
		if err != nil {
			abortWithError(c, err)
			return
		}

		caller, err := resolver.ResolveCaller(c.Request.Context(), id)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Status >= http.StatusInternalServerError {
				l.Error("resolve caller failed", zap.String("employee_id", id.String()), zap.Error(err))
				abortWithError(c, err)
				return
			}
			abortWithError(c, ErrUnknownCaller)
			return
		}

		ctx := contextutil.WithCaller(c.Request.Context(), caller)
		c.Request = c.Request.WithContext(ctx)
		c.Set("employee_id", caller.EmployeeID.String())
		c.Next()
	}
}

func employeeIDFromHeader(c *gin.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.GetHeader(EmployeeIDHeader))
	if raw == "" {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrUnknownCaller
	}
	return id, nil
}

func employeeIDFromToken(c *gin.Context, secret string) (uuid.UUID, error) {
	tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found {
		tokenString = ""
	}
	if tokenString == "" {
		if cookie, err := c.Cookie("access_token"); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		return uuid.Nil, ErrTokenMissing
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}
	raw, _ := claims["employee_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
