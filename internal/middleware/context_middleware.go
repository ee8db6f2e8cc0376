package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"go.uber.org/zap"
)

// ContextLogger attaches a request scoped logger and writes one access log
// line per request. Mount it after RequestID and AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		md := contextutil.ExtractMetadata(c.Request.Context())

		reqLogger := logger.With(
			zap.String("request_id", md.RequestID),
			zap.String("caller_id", md.CallerID),
			zap.String("role", md.Role),
		)
		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
