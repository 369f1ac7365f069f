package components

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/publisher/service"
)

// ConstraintCheckerImpl implements the ConstraintChecker interface
type ConstraintCheckerImpl struct {
	productRepo product.Repository
	logger      *slog.Logger
}

// NewConstraintChecker creates a new ConstraintCheckerImpl
func NewConstraintChecker(productRepo product.Repository, logger *slog.Logger) service.ConstraintChecker {
	return &ConstraintCheckerImpl{
		productRepo: productRepo,
		logger:      logger,
	}
}

// CheckConstraints validates the working set of submitted items against
// current inventory and returns every offending item found, so the caller
// can correct the whole batch in one round trip.
//
// The check is asymmetric: decreasing units sold only returns inventory and
// is never flagged, while increasing units sold or adding a brand-new line
// item consumes inventory and must be bounded by current stock.
func (c *ConstraintCheckerImpl) CheckConstraints(ctx context.Context, tx pgx.Tx, hasChanged bool, submitted []report.SubmittedItem, existing *transaction.Transaction) ([]report.OffendingItem, error) {
	// An unmodified re-publish of an already published transaction has
	// nothing to validate. Everything else validates the full submission.
	if !hasChanged && existing != nil {
		return nil, nil
	}

	productRepoTx := c.productRepo.WithTx(tx)

	var offending []report.OffendingItem
	for _, item := range submitted {
		p, err := productRepoTx.GetByID(ctx, item.ProductID)
		if err != nil {
			// A failed lookup is fatal to the whole batch; remaining items
			// are not processed
			c.logger.Error("Product lookup failed during constraint check",
				"product_id", item.ProductID.String(),
				"product_name", item.ProductName,
				"error", err)
			return nil, report.ProductNotFoundError{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Err:         err,
			}
		}

		// A missing product counts as zero stock
		var productCount int64
		if p != nil {
			productCount = p.InventoryCount
		}

		var existingItem *transaction.Item
		if existing != nil && item.ID != nil {
			existingItem = existing.ItemByID(*item.ID)
		}

		if existingItem != nil {
			// Modification: only an increase in units sold consumes stock
			inventoryChange := existingItem.UnitsSold - item.UnitsSold
			if inventoryChange < 0 && (p == nil || -inventoryChange > productCount) {
				offending = append(offending, report.ModifiedItemOffense(
					item.ProductID,
					item.ProductName,
					productCount,
					item.UnitsSold,
					existingItem.UnitsSold,
				))
			}
			continue
		}

		// Brand-new line item: bounded by current stock, boundary inclusive
		// of exact depletion
		if p == nil || item.UnitsSold > productCount {
			offending = append(offending, report.NewItemOffense(
				item.ProductID,
				item.ProductName,
				productCount,
				item.UnitsSold,
			))
		}
	}

	return offending, nil
}
