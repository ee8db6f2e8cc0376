package producer

import (
	"context"
	"errors"
	"time"

	"github.com/jyhens/Layer2-Application/internal/messaging/kafka"
	"github.com/robfig/cron/v3"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const batchSize = 50

func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	publisher *Publisher,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := processPendingEvents(ctx, repo, publisher, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// processPendingEvents publishes one batch and returns how many events were
// marked sent.
func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	publisher *Publisher,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				logger.Warn("kafka circuit open, postponing batch", zap.Int("remaining", len(events)-sent))
				return sent, nil
			}
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if err := repo.MarkFailed(ctx, event.ID, err.Error()); err != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(err))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("request_id", event.RequestID),
		)
	}

	return sent, nil
}

// ScheduleHousekeeping registers the outbox purge on c. Events sent longer
// than retention ago are deleted.
func ScheduleHousekeeping(c *cron.Cron, spec string, repo kafka.OutboxRepository, retention time.Duration, logger *zap.Logger) (cron.EntryID, error) {
	log := logger.Named("kafka.producer.housekeeping")
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := repo.PurgeSent(ctx, retention)
		if err != nil {
			log.Error("purge sent outbox events failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("purged sent outbox events", zap.Int64("count", n), zap.Duration("retention", retention))
		}
	})
}
