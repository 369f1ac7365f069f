package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes sale events to the feed topic. The key selects
// the partition, so callers use the transaction ID to keep all versions of a
// sale on one partition.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// DeadLetterPublisher routes payloads that cannot be decoded to the DLQ topic
// so the consumer can commit past them.
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, payload []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
