package consumer

import (
	"context"
	"encoding/json"

	"github.com/jyhens/Layer2-Application/internal/events"
	"github.com/jyhens/Layer2-Application/internal/notification"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationStore persists a delivered inbox entry. It reports false for
// an entry that was already stored.
type NotificationStore interface {
	Store(ctx context.Context, n notification.Notification) (bool, error)
}

func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	store NotificationStore,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		if !handleMessage(ctx, msg, store, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

// handleMessage stores the entry carried by msg and reports whether the
// message may be committed. Undecodable messages are committed and dropped.
// Store failures leave the message uncommitted for redelivery.
func handleMessage(ctx context.Context, msg kafkago.Message, store NotificationStore, log *zap.Logger) bool {
	var event events.LeaveNotificationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave notification event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return true
	}

	n, err := notification.FromEvent(event)
	if err != nil {
		log.Error("invalid leave notification event",
			zap.String("event_type", event.EventType),
			zap.String("notification_id", event.NotificationID),
			zap.Error(err),
		)
		return true
	}

	stored, err := store.Store(ctx, n)
	if err != nil {
		log.Error("store leave notification failed",
			zap.String("notification_id", event.NotificationID),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return false
	}

	if !stored {
		log.Warn("leave notification already stored, skipping",
			zap.String("notification_id", event.NotificationID),
		)
		return true
	}

	log.Info("leave notification stored",
		zap.String("notification_id", event.NotificationID),
		zap.String("user_id", event.UserID),
		zap.String("kind", event.Kind),
		zap.String("request_id", event.RequestID),
	)
	return true
}
