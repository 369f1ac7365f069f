package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/outbox"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/publisher/service"
	"github.com/shopspring/decimal"
)

// OutboxManagerImpl implements the OutboxManager interface
type OutboxManagerImpl struct {
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

// NewOutboxManager creates a new OutboxManagerImpl
func NewOutboxManager(outboxRepo outbox.Repository, logger *slog.Logger) service.OutboxManager {
	return &OutboxManagerImpl{
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// CreateOutboxEntry projects the published sale into a history entry and
// stores it as a pending outbox message within the publish transaction, so
// the event is delivered if and only if the publish commits.
func (m *OutboxManagerImpl) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *report.PublishRequest, items []*transaction.Item) error {
	entry := buildHistoryEntry(request, items)

	message, err := outbox.NewMessage(entry)
	if err != nil {
		m.logger.Error("Failed to build outbox message",
			"transaction_id", request.TransactionID.String(),
			"error", err)
		return fmt.Errorf("failed to build outbox message for %s: %w", request.TransactionID.String(), err)
	}

	if err := m.outboxRepo.WithTx(tx).Create(ctx, message); err != nil {
		return err
	}

	m.logger.Debug("Outbox entry created",
		"transaction_id", request.TransactionID.String(),
		"outbox_id", message.ID)
	return nil
}

func buildHistoryEntry(request *report.PublishRequest, items []*transaction.Item) *saleshistory.Entry {
	lines := make([]saleshistory.Line, 0, len(items))
	grossTotal := decimal.Zero
	for _, item := range items {
		lines = append(lines, saleshistory.Line{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitsSold:   item.UnitsSold,
			Price:       item.Price.String(),
			Cost:        item.Cost.String(),
		})
		grossTotal = grossTotal.Add(item.Price.Mul(decimal.NewFromInt(item.UnitsSold)))
	}

	entry := &saleshistory.Entry{
		TransactionID: request.TransactionID,
		UserID:        request.UserID,
		ReportTitle:   request.Params.ReportTitle,
		Lines:         lines,
		GrossTotal:    grossTotal.String(),
		CorrelationID: request.CorrelationID,
		PublishedAt:   time.Now(),
	}
	if len(items) > 0 {
		entry.StoreID = items[0].StoreID
		entry.OrganizationID = items[0].OrganizationID
	}

	return entry
}
