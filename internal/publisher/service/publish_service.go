// Package service orchestrates report publishing: change detection,
// inventory constraint checking, and the atomic reconciliation of item
// upserts, inventory deltas, and the transaction record itself.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/platform/persistence"
)

type PublishServiceImpl struct {
	pgDB            *persistence.PostgresDB
	transactionRepo transaction.Repository
	detector        ChangeDetector
	checker         ConstraintChecker
	reconciler      ItemReconciler
	outboxManager   OutboxManager
	logger          *slog.Logger
}

func NewPublishService(
	pgDB *persistence.PostgresDB,
	transactionRepo transaction.Repository,
	detector ChangeDetector,
	checker ConstraintChecker,
	reconciler ItemReconciler,
	outboxManager OutboxManager,
	logger *slog.Logger,
) PublishService {
	return &PublishServiceImpl{
		pgDB:            pgDB,
		transactionRepo: transactionRepo,
		detector:        detector,
		checker:         checker,
		reconciler:      reconciler,
		outboxManager:   outboxManager,
		logger:          logger,
	}
}

// PublishReport runs the full publish pipeline inside one database
// transaction. Any raised error aborts the whole batch; no partial writes
// survive a rejected publish.
func (s *PublishServiceImpl) PublishReport(ctx context.Context, request *report.PublishRequest) (*report.PublishResult, error) {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	// Reject empty submissions before touching the database
	if len(request.Items) == 0 {
		logger.Warn("Rejecting empty publish submission", "transaction_id", request.TransactionID.String())
		return nil, report.GenericTransactionError{Details: "no items to publish"}
	}

	logger.Info("Publishing sale report", "transaction_id", request.TransactionID.String(), "item_count", len(request.Items))

	var tx pgx.Tx
	tx, err := s.pgDB.Pool().Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin database transaction", "transaction_id", request.TransactionID.String(), "error", err)
		return nil, fmt.Errorf("failed to begin DB transaction for %s: %w", request.TransactionID.String(), err)
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic recovered, rolling back transaction", "panic", p, "transaction_id", request.TransactionID.String())
			_ = tx.Rollback(ctx)
			panic(p) // Re-panic
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				logger.Error("Failed to rollback transaction after error", "rollback_error", rbErr, "original_error", err, "transaction_id", request.TransactionID.String())
			}
		}
	}()

	// 1. Only a previously published transaction counts as "existing" for
	// change detection. A merely-pending one never blocks re-evaluation.
	var existing *transaction.Transaction
	existing, err = s.transactionRepo.WithTx(tx).GetPublished(ctx, request.TransactionID)
	if err != nil {
		return nil, err
	}

	// 2. Classify the submission
	hasChanged := s.detector.HasChanged(request.Items, existing)
	logger.Debug("Change detection complete", "transaction_id", request.TransactionID.String(), "has_changed", hasChanged)

	// 3. Check inventory constraints over the working set
	var offending []report.OffendingItem
	offending, err = s.checker.CheckConstraints(ctx, tx, hasChanged, request.Items, existing)
	if err != nil {
		return nil, err
	}
	if len(offending) > 0 {
		logger.Warn("Inventory constraints violated, aborting publish",
			"transaction_id", request.TransactionID.String(),
			"offending_count", len(offending))
		err = report.InventoryConstraintError{OffendingItems: offending}
		return nil, err
	}

	// 4. Apply item upserts and inventory deltas
	var items []*transaction.Item
	items, err = s.reconciler.ReconcileItems(ctx, tx, request)
	if err != nil {
		return nil, err
	}

	// 5. Update the parent transaction, forcing status to published
	if err = s.transactionRepo.WithTx(tx).Publish(ctx, request.TransactionID, request.Params); err != nil {
		return nil, err
	}

	// 6. Record the published sale for downstream projection
	if err = s.outboxManager.CreateOutboxEntry(ctx, tx, request, items); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit database transaction", "transaction_id", request.TransactionID.String(), "error", err)
		return nil, fmt.Errorf("failed to commit DB transaction for %s: %w", request.TransactionID.String(), err)
	}

	logger.Info("Sale report published", "transaction_id", request.TransactionID.String(), "item_count", len(items))
	return &report.PublishResult{
		Status: "success",
		Items:  items,
	}, nil
}
