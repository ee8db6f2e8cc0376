package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/app"
	"github.com/jyhens/Layer2-Application/internal/bootstrap"
	"github.com/jyhens/Layer2-Application/internal/shared/apperror"
	"github.com/jyhens/Layer2-Application/internal/shared/config"
	"github.com/jyhens/Layer2-Application/internal/shared/logging"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	ctx, stop := bootstrap.SignalContext(context.Background())
	defer stop()

	// build dependency + routes
	infra, err := app.BuildApp(ctx, r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer infra.Close()

	err = bootstrap.StartHTTPServer(
		ctx,
		r,
		bootstrap.ServerConfig{
			Port:            cfg.Port,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(logger),
		logger,
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
