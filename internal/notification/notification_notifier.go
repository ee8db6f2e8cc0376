package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/messaging/kafka"
	"github.com/jyhens/Layer2-Application/internal/shared/contextutil"
)

// DirectNotifier writes the inbox entry in the request path.
type DirectNotifier struct {
	repo Repository
}

func NewDirectNotifier(repo Repository) *DirectNotifier {
	return &DirectNotifier{repo: repo}
}

func (d *DirectNotifier) Notify(ctx context.Context, msg Message) error {
	n := msg.toEntity(uuid.New(), time.Now().UTC())
	return d.repo.Create(ctx, &n)
}

// OutboxNotifier enqueues the inbox entry as an outbox event. The worker
// publishes it and the consumer stores it.
type OutboxNotifier struct {
	outbox kafka.OutboxRepository
	topic  string
}

func NewOutboxNotifier(outbox kafka.OutboxRepository, topic string) *OutboxNotifier {
	return &OutboxNotifier{outbox: outbox, topic: topic}
}

func (o *OutboxNotifier) Notify(ctx context.Context, msg Message) error {
	rid := contextutil.GetRequestID(ctx)
	evt := EventFor(msg, uuid.New(), rid, time.Now().UTC())

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return o.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   msg.LeaveRequestID.String(),
		EventType:     evt.EventType,
		Topic:         o.topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
