package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// ProductService defines the interface for product operations
type ProductService interface {
	// CreateProduct creates a new product in a store's catalog
	CreateProduct(ctx context.Context, storeID, organizationID int64, name, sku string, price, cost decimal.Decimal, inventoryCount int64) (*product.Product, error)

	// GetProductByID retrieves a product by its ID
	// Returns nil if the product doesn't exist
	GetProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// TransactionService defines the interface for POS transaction operations
type TransactionService interface {
	// CreateTransaction opens a new pending transaction
	CreateTransaction(ctx context.Context, storeID, organizationID int64, userID uuid.UUID) (*transaction.Transaction, error)

	// GetTransactionByID retrieves a transaction with its line items
	// Returns ErrTransactionNotFound if the transaction doesn't exist
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)

	// PublishReport runs the publish engine for one submission.
	// Returns InventoryConstraintError, ProductNotFoundError or
	// GenericTransactionError when the submission is rejected.
	PublishReport(ctx context.Context, request *report.PublishRequest) (*report.PublishResult, error)
}

// SalesHistoryService defines the interface for querying the sales
// history projection
type SalesHistoryService interface {
	// GetSaleByTransactionID retrieves the projected entry for a transaction
	// Returns ErrEntryNotFound if the transaction has no published sale
	GetSaleByTransactionID(ctx context.Context, transactionID uuid.UUID) (*saleshistory.Entry, error)

	// GetSalesByStore retrieves a paginated list of sales for a store
	// Returns entries, total count of all entries, and any error
	GetSalesByStore(ctx context.Context, storeID int64, page, perPage int) ([]*saleshistory.Entry, int64, error)
}
