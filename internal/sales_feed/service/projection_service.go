package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
)

// ProjectionServiceImpl implements the ProjectionService interface
type ProjectionServiceImpl struct {
	salesRepo saleshistory.Repository
	logger    *slog.Logger
}

// NewProjectionService creates a new projection service
func NewProjectionService(salesRepo saleshistory.Repository, logger *slog.Logger) ProjectionService {
	return &ProjectionServiceImpl{
		salesRepo: salesRepo,
		logger:    logger,
	}
}

// ProjectSale writes one published sale into the sales history collection.
// The write replaces any existing document for the same transaction, so
// replayed events and re-published reports converge on the same state.
func (s *ProjectionServiceImpl) ProjectSale(ctx context.Context, entry *saleshistory.Entry) error {
	if entry.TransactionID == uuid.Nil {
		return fmt.Errorf("sale event has no transaction ID")
	}

	logger := s.logger
	if entry.CorrelationID != "" {
		logger = s.logger.With("correlation_id", entry.CorrelationID)
	}

	if err := s.salesRepo.Upsert(ctx, entry); err != nil {
		logger.Error("Failed to project sale into history",
			"transaction_id", entry.TransactionID.String(),
			"store_id", entry.StoreID,
			"error", err,
		)
		return fmt.Errorf("failed to project sale %s: %w", entry.TransactionID.String(), err)
	}

	logger.Info("Projected sale into history",
		"transaction_id", entry.TransactionID.String(),
		"store_id", entry.StoreID,
		"lines", len(entry.Lines),
	)
	return nil
}
