package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines product persistence operations
type Repository interface {
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by its ID.
	// Returns (nil, nil) when no product exists, so callers can treat a
	// missing product as zero stock without an error branch.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// IncrementInventory atomically adjusts inventory_count by delta.
	// Delta may be negative. Returns ErrProductNotFound if no row matched.
	IncrementInventory(ctx context.Context, id uuid.UUID, delta int64) error

	// DecrementInventory atomically subtracts units from inventory_count.
	// Returns ErrProductNotFound if no row matched.
	DecrementInventory(ctx context.Context, id uuid.UUID, units int64) error

	WithTx(tx pgx.Tx) Repository
}

// ErrProductNotFound indicates a missing product row
type ErrProductNotFound struct {
	ProductID uuid.UUID
}

func (e ErrProductNotFound) Error() string {
	return "product not found: " + e.ProductID.String()
}
