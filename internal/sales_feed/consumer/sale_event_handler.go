package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/kwam1na/athena-commerce/internal/platform/messaging/producers"
	"github.com/kwam1na/athena-commerce/internal/sales_feed/service"
)

// SaleEventHandler handles incoming sale event messages from Kafka
type SaleEventHandler struct {
	projectionService service.ProjectionService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewSaleEventHandler creates a new handler
func NewSaleEventHandler(
	logger *slog.Logger,
	projectionService service.ProjectionService,
	producer producers.DeadLetterPublisher,
) *SaleEventHandler {
	return &SaleEventHandler{
		projectionService: projectionService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages. Malformed payloads go to the DLQ
// so the partition keeps moving; projection failures are returned so the
// offset is not committed and the event is redelivered.
func (h *SaleEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var entry saleshistory.Entry
	if err := json.Unmarshal(value, &entry); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal sale event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if entry.CorrelationID != "" {
		logger = h.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Info("Received sale event for projection",
		"transaction_id", entry.TransactionID.String(),
		"store_id", entry.StoreID,
		"lines", len(entry.Lines),
	)

	if err := h.projectionService.ProjectSale(ctx, &entry); err != nil {
		logger.Error("Failed to project sale event",
			"transaction_id", entry.TransactionID.String(),
			"store_id", entry.StoreID,
			"error", err,
		)
		return fmt.Errorf("projecting sale %s failed: %w", entry.TransactionID.String(), err)
	}

	logger.Info("Successfully projected sale event", "transaction_id", entry.TransactionID.String())
	return nil // Success, commit offset
}
