package app

import (
	"context"
	"fmt"

	"github.com/jyhens/Layer2-Application/internal/messaging/kafka"
	"github.com/jyhens/Layer2-Application/internal/messaging/kafka/producer"
	"github.com/jyhens/Layer2-Application/internal/shared/config"
	"github.com/jyhens/Layer2-Application/internal/shared/connection"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka and purges delivered ones on a
// schedule until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.DB.Driver != config.DriverPostgres {
		return fmt.Errorf("worker requires DB_DRIVER=%s", config.DriverPostgres)
	}
	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	publisher := producer.NewPublisher(kafkaWriter, "kafka-outbox")

	scheduler := cron.New()
	if _, err := producer.ScheduleHousekeeping(scheduler, cfg.OutboxPurgeSpec, outboxRepo, cfg.OutboxRetention, logger); err != nil {
		return fmt.Errorf("schedule outbox housekeeping: %w", err)
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	log.Info("worker started",
		zap.Duration("poll_interval", cfg.OutboxPollInterval),
		zap.String("purge_spec", cfg.OutboxPurgeSpec),
	)
	producer.ProcessOutboxEvents(ctx, outboxRepo, publisher, logger, cfg.OutboxPollInterval)

	log.Info("worker shutting down")
	return nil
}
