package changefeed

import (
	"context"
	"log/slog"
	"time"

	"neighborhood/internal/domain/service"
	"neighborhood/internal/errors"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type kafkaTransport struct {
	writer *kafka.Writer
	reader *kafka.Reader
}

// NewKafkaFeed returns a change feed over a Kafka topic. Every process joins its own
// consumer group, derived from groupID, so each instance receives every change.
func NewKafkaFeed(brokers []string, topic, groupID string, logger *slog.Logger) (service.ChangeFeed, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka change feed requires at least one broker")
	}
	if topic == "" || groupID == "" {
		return nil, errors.New("kafka change feed requires topic and group id")
	}

	instanceGroup := groupID + "-" + uuid.NewString()[:8]
	logger.Info("Kafka change feed initialized",
		slog.String("topic", topic),
		slog.String("group_id", instanceGroup),
	)

	return newTransportFeed(&kafkaTransport{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Balancer:     &kafka.Hash{},
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			GroupID:     instanceGroup,
			Topic:       topic,
			StartOffset: kafka.LastOffset,
			MinBytes:    1,
			MaxBytes:    10e6,
			MaxWait:     500 * time.Millisecond,
		}),
	}, logger), nil
}

func (t *kafkaTransport) name() string { return "kafka" }

func (t *kafkaTransport) publish(ctx context.Context, data []byte) error {
	return t.writer.WriteMessages(ctx, kafka.Message{
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (t *kafkaTransport) receive(ctx context.Context, deliver func(ctx context.Context, data []byte)) error {
	for {
		msg, err := t.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return err
		}
		deliver(ctx, msg.Value)
	}
}

func (t *kafkaTransport) close() error {
	return errors.Join(t.writer.Close(), t.reader.Close())
}
