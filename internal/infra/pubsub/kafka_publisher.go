package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"vidtube/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// kafkaPublisher implements EventPublisher on a Kafka topic. Messages are
// keyed by user ID so one user's events land on one partition.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher creates a synchronous writer for topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
		logger: logger,
	}
}

func (p *kafkaPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attributes := eventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for k, v := range attributes {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.UserID),
		Value:   data,
		Headers: headers,
		Time:    event.OccurredAt,
	}); err != nil {
		return errors.Wrap(err, "kafka write failed")
	}

	p.logger.DebugContext(ctx, "[Kafka] Event published",
		slog.String("topic", p.writer.Topic),
		slog.String("event_type", string(event.Type)),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
