package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines transaction persistence operations
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error

	// GetByID retrieves a transaction with its items.
	// Returns ErrTransactionNotFound if the transaction doesn't exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// GetPublished retrieves a transaction with its items, filtered to
	// status published. Returns (nil, nil) when no published row exists,
	// so a first publish and a pending re-publish look identical to the
	// change detector.
	GetPublished(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Publish updates the transaction with the given params and forces
	// its status to published.
	Publish(ctx context.Context, id uuid.UUID, params PublishParams) error

	// UpdateStatus sets the transaction status without touching report fields
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	WithTx(tx pgx.Tx) Repository
}

// ItemRepository defines transaction item persistence operations
type ItemRepository interface {
	// GetForUpdate retrieves an item by ID, additionally matched on product
	// and transaction to guard against cross-transaction identifier reuse.
	// Returns (nil, nil) when no row matches.
	GetForUpdate(ctx context.Context, id, productID, transactionID uuid.UUID) (*Item, error)

	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*Item, error)
	WithTx(tx pgx.Tx) ItemRepository
}

// ErrTransactionNotFound indicates a missing transaction
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// ErrItemNotFound indicates a missing transaction item
type ErrItemNotFound struct {
	ItemID uuid.UUID
}

func (e ErrItemNotFound) Error() string {
	return "transaction item not found: " + e.ItemID.String()
}
