// Package health serves liveness, readiness and build info probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/jyhens/Layer2-Application/internal/shared/response"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Info struct {
	Name        string
	Version     string
	Environment string
	StartedAt   time.Time
}

type LiveResponse struct {
	Live bool      `json:"live"`
	At   time.Time `json:"at"`
}

type ReadyResponse struct {
	Ready      bool              `json:"ready"`
	Components map[string]string `json:"components"`
}

type InfoResponse struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	Environment   string    `json:"environment"`
	StartedAt     time.Time `json:"started_at"`
	Now           time.Time `json:"now"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

var ErrNotReady = apperror.New(apperror.CodeServiceUnavailable, "Service is not ready", http.StatusServiceUnavailable)

type Handler struct {
	db     Pinger
	cache  Pinger
	info   Info
	now    func() time.Time
	logger *zap.Logger
}

// NewHandler builds the probe handler. cache may be nil when Redis is not
// configured.
func NewHandler(db Pinger, cache Pinger, info Info, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{db: db, cache: cache, info: info, now: time.Now, logger: l}
}

func (h *Handler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, LiveResponse{Live: true, At: h.now().UTC()}, nil)
}

func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	components := map[string]string{"database": "ok"}
	ready := true
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database not ready", zap.Error(err))
		components["database"] = "unavailable"
		ready = false
	}
	if h.cache != nil {
		components["cache"] = "ok"
		// cache outage degrades idempotency only
		if err := h.cache.PingContext(ctx); err != nil {
			h.logger.Warn("cache not ready", zap.Error(err))
			components["cache"] = "degraded"
		}
	}

	if !ready {
		response.Error(c, ErrNotReady.HTTPStatus, ErrNotReady.Code, ErrNotReady.Message, components)
		return
	}
	response.Success(c, http.StatusOK, ReadyResponse{Ready: true, Components: components}, nil)
}

func (h *Handler) Info(c *gin.Context) {
	now := h.now().UTC()
	response.Success(c, http.StatusOK, InfoResponse{
		Name:          h.info.Name,
		Version:       h.info.Version,
		Environment:   h.info.Environment,
		StartedAt:     h.info.StartedAt.UTC(),
		Now:           now,
		UptimeSeconds: now.Sub(h.info.StartedAt).Seconds(),
	}, nil)
}

func RegisterRoutes(r gin.IRouter, h *Handler) {
	g := r.Group("/health")
	{
		g.GET("/live", h.Live)
		g.GET("/ready", h.Ready)
		g.GET("/info", h.Info)
	}
}
