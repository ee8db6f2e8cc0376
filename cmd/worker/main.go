package main

import (
	"context"

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

	ctx, stop := bootstrap.SignalContext(context.Background())
	defer stop()

	if err := app.RunWorker(ctx, cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
