package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
)

// PublishService defines the interface for publishing sale reports.
type PublishService interface {
	PublishReport(ctx context.Context, request *report.PublishRequest) (*report.PublishResult, error)
}

// ChangeDetector decides whether a submission differs materially from the
// previously published version of the same transaction
type ChangeDetector interface {
	HasChanged(submitted []report.SubmittedItem, existing *transaction.Transaction) bool
}

// ConstraintChecker validates submitted quantities against current inventory
type ConstraintChecker interface {
	CheckConstraints(ctx context.Context, tx pgx.Tx, hasChanged bool, submitted []report.SubmittedItem, existing *transaction.Transaction) ([]report.OffendingItem, error)
}

// ItemReconciler applies item upserts and the matching inventory deltas
type ItemReconciler interface {
	ReconcileItems(ctx context.Context, tx pgx.Tx, request *report.PublishRequest) ([]*transaction.Item, error)
}

// OutboxManager records the published sale as a pending outbox message
type OutboxManager interface {
	CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *report.PublishRequest, items []*transaction.Item) error
}
