package app

import (
	"context"
	"fmt"

	"github.com/jyhens/Layer2-Application/internal/messaging/kafka/consumer"
	"github.com/jyhens/Layer2-Application/internal/notification"
	"github.com/jyhens/Layer2-Application/internal/shared/config"
	"github.com/jyhens/Layer2-Application/internal/shared/connection"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer stores leave notifications from Kafka in the inbox until ctx
// is cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

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

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(sqlDB, notificationRepo, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          cfg.KafkaNotificationTopic,
		GroupID:        cfg.KafkaConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	log.Info("consumer started",
		zap.String("topic", cfg.KafkaNotificationTopic),
		zap.String("group_id", cfg.KafkaConsumerGroup),
	)
	consumer.ConsumeLeaveNotifications(ctx, reader, notificationService, logger)

	log.Info("consumer shutting down")
	return nil
}
