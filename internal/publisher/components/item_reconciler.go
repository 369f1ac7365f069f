package components

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/publisher/service"
)

// ItemReconcilerImpl implements the ItemReconciler interface
type ItemReconcilerImpl struct {
	itemRepo    transaction.ItemRepository
	productRepo product.Repository
	logger      *slog.Logger
}

// NewItemReconciler creates a new ItemReconcilerImpl
func NewItemReconciler(itemRepo transaction.ItemRepository, productRepo product.Repository, logger *slog.Logger) service.ItemReconciler {
	return &ItemReconcilerImpl{
		itemRepo:    itemRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// ReconcileItems upserts every submitted line item and applies the matching
// inventory delta. Items run sequentially on the shared transaction handle;
// pgx does not support concurrent statements on one transaction, and the
// per-item order does not affect the outcome because inventory adjustments
// are atomic SQL increments.
func (r *ItemReconcilerImpl) ReconcileItems(ctx context.Context, tx pgx.Tx, request *report.PublishRequest) ([]*transaction.Item, error) {
	logger := r.logger
	if request.CorrelationID != "" {
		logger = r.logger.With("correlation_id", request.CorrelationID)
	}

	itemRepoTx := r.itemRepo.WithTx(tx)
	productRepoTx := r.productRepo.WithTx(tx)

	items := make([]*transaction.Item, 0, len(request.Items))
	for _, submitted := range request.Items {
		// The composite lookup guards against identifiers reused across
		// transactions: an ID that matches a row of a different transaction
		// or product falls through to the create path.
		var existingItem *transaction.Item
		if submitted.ID != nil {
			var err error
			existingItem, err = itemRepoTx.GetForUpdate(ctx, *submitted.ID, submitted.ProductID, request.TransactionID)
			if err != nil {
				return nil, err
			}
		}

		if existingItem != nil {
			// Update path: a positive inventory change returns stock, a
			// negative one consumes more
			inventoryChange := existingItem.UnitsSold - submitted.UnitsSold

			existingItem.ProductName = submitted.ProductName
			existingItem.Price = submitted.Price
			existingItem.Cost = submitted.Cost
			existingItem.UnitsSold = submitted.UnitsSold
			existingItem.StoreID = submitted.StoreID
			existingItem.OrganizationID = submitted.OrganizationID
			existingItem.UpdatedAt = time.Now()

			if err := itemRepoTx.Update(ctx, existingItem); err != nil {
				return nil, err
			}
			if inventoryChange != 0 {
				if err := productRepoTx.IncrementInventory(ctx, submitted.ProductID, inventoryChange); err != nil {
					return nil, err
				}
			}

			logger.Debug("Updated transaction item",
				"item_id", existingItem.ID.String(),
				"product_id", submitted.ProductID.String(),
				"inventory_change", inventoryChange)
			items = append(items, existingItem)
			continue
		}

		// Create path
		now := time.Now()
		newItem := &transaction.Item{
			ID:             uuid.New(),
			TransactionID:  request.TransactionID,
			ProductID:      submitted.ProductID,
			ProductName:    submitted.ProductName,
			Price:          submitted.Price,
			Cost:           submitted.Cost,
			UnitsSold:      submitted.UnitsSold,
			StoreID:        submitted.StoreID,
			OrganizationID: submitted.OrganizationID,
			UserID:         request.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := itemRepoTx.Create(ctx, newItem); err != nil {
			return nil, err
		}
		if err := productRepoTx.DecrementInventory(ctx, submitted.ProductID, submitted.UnitsSold); err != nil {
			return nil, err
		}

		logger.Debug("Created transaction item",
			"item_id", newItem.ID.String(),
			"product_id", submitted.ProductID.String(),
			"units_sold", submitted.UnitsSold)
		items = append(items, newItem)
	}

	return items, nil
}
