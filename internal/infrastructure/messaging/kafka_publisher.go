package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vehiclefin/financing-offer/internal/domain/event"
	"github.com/vehiclefin/financing-offer/pkg/events"
	"github.com/vehiclefin/financing-offer/pkg/kafka"
)

// MessageWriter is the part of *kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaEventPublisher implements port.EventPublisher by writing event
// envelopes to one topic, keyed by aggregate id.
type KafkaEventPublisher struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given topic.
func NewKafkaEventPublisher(writer MessageWriter, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish sends all events in one batch.
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		msg, err := toMessage(evt)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("write %d events to %s: %w", len(messages), p.topic, err)
	}

	for _, evt := range evts {
		p.logger.DebugContext(ctx, "published domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
		)
	}
	return nil
}

func toMessage(evt event.DomainEvent) (kafka.Message, error) {
	env, err := events.NewEnvelope(evt)
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal envelope %s: %w", evt.EventType(), err)
	}
	return kafka.Message{
		Key:   []byte(evt.AggregateID()),
		Value: value,
		Headers: map[string]string{
			"event_type":     evt.EventType(),
			"aggregate_type": evt.AggregateType(),
		},
	}, nil
}

// LogEventPublisher logs events instead of sending them. Used when no
// brokers are configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	for _, evt := range evts {
		env, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}
		p.logger.InfoContext(ctx, "domain event",
			"event_id", env.ID,
			"event_type", env.Type,
			"aggregate_id", env.AggregateID,
			"payload", string(env.Payload),
		)
	}
	return nil
}

var (
	_ events.EventPublisher = (*KafkaEventPublisher)(nil)
	_ events.EventPublisher = (*LogEventPublisher)(nil)
	_ MessageWriter         = (*kafka.Producer)(nil)
)
