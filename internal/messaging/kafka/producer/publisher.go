package producer

import (
	"context"
	"time"

	"github.com/jyhens/Layer2-Application/internal/messaging/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

// MessageWriter is the part of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher writes outbox events to Kafka behind a circuit breaker so a
// broker outage fails fast instead of stalling every poll.
type Publisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker
}

func NewPublisher(writer MessageWriter, name string) *Publisher {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Publisher{writer: writer, breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (p *Publisher) State() gobreaker.State {
	return p.breaker.State()
}

func (p *Publisher) Publish(ctx context.Context, event kafka.OutboxEvent) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, toMessage(event))
	})
	return err
}

func toMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}
	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
}
