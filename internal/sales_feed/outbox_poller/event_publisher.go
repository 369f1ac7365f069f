package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kwam1na/athena-commerce/internal/domain/outbox"
	"github.com/kwam1na/athena-commerce/internal/platform/messaging/producers"
)

// SaleEventPublisher publishes outbox messages to the sale events topic
type SaleEventPublisher interface {
	PublishSaleEvent(ctx context.Context, message *outbox.Message) error
}

// SaleEventPublisherImpl implements SaleEventPublisher
type SaleEventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewSaleEventPublisher creates a new publisher
func NewSaleEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) SaleEventPublisher {
	return &SaleEventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishSaleEvent pushes one outbox message to Kafka and marks it PROCESSED.
// The message key is the transaction ID, so all versions of the same sale
// land on one partition and replay in order.
func (p *SaleEventPublisherImpl) PublishSaleEvent(ctx context.Context, message *outbox.Message) error {
	entry, err := message.SaleEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal sale event from outbox payload",
			"outbox_id", message.ID, "transaction_id", message.TransactionID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if entry.CorrelationID != "" {
		logger = p.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Info("Attempting to publish outbox message to sale events topic", "outbox_id", message.ID, "transaction_id", message.TransactionID)

	if err := p.producer.Publish(ctx, message.TransactionID.String(), entry); err != nil {
		logger.Error("Failed to publish sale event to Kafka", "outbox_id", message.ID, "transaction_id", message.TransactionID, "error", err)
		return fmt.Errorf("failed to publish sale event for outbox %d: %w", message.ID, err)
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "transaction_id", message.TransactionID, "error", err,
		)
		return fmt.Errorf("sale event for %s published, but failed to mark outbox %d as PROCESSED: %w", message.TransactionID, message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID, "transaction_id", message.TransactionID)
	return nil
}
