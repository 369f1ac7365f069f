package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kwam1na/athena-commerce/internal/config"
	"github.com/segmentio/kafka-go"
)

// SaleEventProducer publishes published-sale events to the sale events topic
type SaleEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewSaleEventProducer creates the producer and ensures the topic exists
func NewSaleEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*SaleEventProducer, error) {
	if cfg.SaleEventsTopic == "" {
		return nil, fmt.Errorf("kafka sale events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for sale event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.SaleEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure sale events topic %s exists: %w", cfg.SaleEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.SaleEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.SaleEventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.SaleEventsTopic, "count", len(messages))
			}
		},
	}

	return &SaleEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.SaleEventsTopic,
	}, nil
}

func (p *SaleEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal sale event value: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish sale event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish sale event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published sale event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *SaleEventProducer) Close() error {
	p.logger.Info("Closing sale event Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close sale event kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
