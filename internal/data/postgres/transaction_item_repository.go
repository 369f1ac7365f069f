package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/platform/persistence"
)

// TransactionItemRepository implements the transaction.ItemRepository
// interface for PostgreSQL
type TransactionItemRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionItemRepository creates a new PostgreSQL transaction item repository
func NewTransactionItemRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.ItemRepository {
	return &TransactionItemRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *TransactionItemRepository) WithTx(tx pgx.Tx) transaction.ItemRepository {
	return &TransactionItemRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// GetForUpdate retrieves an item by ID, additionally matched on product and
// transaction to guard against cross-transaction identifier reuse. Returns
// (nil, nil) when no row matches.
func (r *TransactionItemRepository) GetForUpdate(ctx context.Context, id, productID, transactionID uuid.UUID) (*transaction.Item, error) {
	query := `
		SELECT id, transaction_id, product_id, product_name, price, cost, units_sold, store_id, organization_id, user_id, created_at, updated_at
		FROM transaction_items
		WHERE id = $1 AND product_id = $2 AND transaction_id = $3
		FOR UPDATE
	`

	var item transaction.Item
	err := r.querier.QueryRow(ctx, query, id, productID, transactionID).Scan(
		&item.ID,
		&item.TransactionID,
		&item.ProductID,
		&item.ProductName,
		&item.Price,
		&item.Cost,
		&item.UnitsSold,
		&item.StoreID,
		&item.OrganizationID,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get transaction item for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction item for update: %w", err)
	}

	return &item, nil
}

// Create stores a new transaction item
func (r *TransactionItemRepository) Create(ctx context.Context, item *transaction.Item) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, product_name, price, cost, units_sold, store_id, organization_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.querier.Exec(ctx, query,
		item.ID,
		item.TransactionID,
		item.ProductID,
		item.ProductName,
		item.Price,
		item.Cost,
		item.UnitsSold,
		item.StoreID,
		item.OrganizationID,
		item.UserID,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction item", "transaction_id", item.TransactionID.String(), "error", err)
		return fmt.Errorf("failed to create transaction item: %w", err)
	}

	return nil
}

// Update persists the submitted fields of an existing transaction item
func (r *TransactionItemRepository) Update(ctx context.Context, item *transaction.Item) error {
	query := `
		UPDATE transaction_items
		SET product_name = $1, price = $2, cost = $3, units_sold = $4, store_id = $5, organization_id = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.querier.Exec(ctx, query,
		item.ProductName,
		item.Price,
		item.Cost,
		item.UnitsSold,
		item.StoreID,
		item.OrganizationID,
		time.Now(),
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction item", "id", item.ID.String(), "error", err)
		return fmt.Errorf("failed to update transaction item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrItemNotFound{ItemID: item.ID}
	}

	return nil
}

// ListByTransaction retrieves all items of a transaction ordered by creation time
func (r *TransactionItemRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*transaction.Item, error) {
	query := `
		SELECT id, transaction_id, product_id, product_name, price, cost, units_sold, store_id, organization_id, user_id, created_at, updated_at
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, transactionID)
	if err != nil {
		r.logger.Error("Failed to list transaction items", "transaction_id", transactionID.String(), "error", err)
		return nil, fmt.Errorf("failed to list transaction items: %w", err)
	}
	defer rows.Close()

	var items []*transaction.Item
	for rows.Next() {
		var item transaction.Item
		err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.ProductID,
			&item.ProductName,
			&item.Price,
			&item.Cost,
			&item.UnitsSold,
			&item.StoreID,
			&item.OrganizationID,
			&item.UserID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan transaction item", "error", err)
			return nil, fmt.Errorf("failed to scan transaction item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over transaction items", "error", err)
		return nil, fmt.Errorf("error iterating over transaction items: %w", err)
	}

	return items, nil
}
