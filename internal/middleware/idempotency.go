package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader    = "Idempotency-Key"
	IdempotentReplayHeader  = "Idempotent-Replayed"
	idempotencyLockTTL      = 30 * time.Second
	idempotencyResponseTTL  = 24 * time.Hour
	idempotencyLockSentinel = "locked"
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyCacheKey scopes a client supplied key to route and caller.
func IdempotencyCacheKey(path, callerID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, callerID, key)
}

// Idempotency replays the stored response for a repeated POST carrying the
// same Idempotency-Key. Server errors are not stored so the client may retry.
func Idempotency(rdb *redis.Client, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.idempotency")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.idempotency")
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyKeyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		callerID := contextutil.ExtractMetadata(ctx).CallerID
		cacheKey := IdempotencyCacheKey(c.FullPath(), callerID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header(IdempotentReplayHeader, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", []byte(cached.Body))
				c.Abort()
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			l.Warn("idempotency lookup failed, continuing without replay", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}

		locked, err := rdb.SetNX(ctx, lockKey, idempotencyLockSentinel, idempotencyLockTTL).Result()
		if err != nil {
			l.Warn("idempotency lock failed, continuing without replay", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !locked {
			abortWithError(c, apperror.ErrRequestInProgress)
			return
		}
		defer func() {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				l.Warn("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
			}
		}()

		w := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		data, err := json.Marshal(cachedResponse{Status: status, Body: w.body.String()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, string(data), idempotencyResponseTTL).Err(); err != nil {
			l.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}
