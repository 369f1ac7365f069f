// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations while maintaining
// transaction safety and proper error handling for the commerce backend.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/kwam1na/athena-commerce/internal/platform/persistence"
)

// ProductRepository implements the product.Repository interface for PostgreSQL
type ProductRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(logger *slog.Logger, db *persistence.PostgresDB) product.Repository {
	return &ProductRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *ProductRepository) WithTx(tx pgx.Tx) product.Repository {
	return &ProductRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new product in the database
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (id, store_id, organization_id, name, sku, price, cost, inventory_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.querier.Exec(ctx, query,
		p.ID,
		p.StoreID,
		p.OrganizationID,
		p.Name,
		p.SKU,
		p.Price,
		p.Cost,
		p.InventoryCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product", "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID. Returns (nil, nil) when no product
// exists so the constraint checker can treat a missing product as zero stock.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `
		SELECT id, store_id, organization_id, name, sku, price, cost, inventory_count, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p product.Product
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.StoreID,
		&p.OrganizationID,
		&p.Name,
		&p.SKU,
		&p.Price,
		&p.Cost,
		&p.InventoryCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get product", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// IncrementInventory atomically adjusts inventory_count by delta. Delta may
// be negative; the adjustment happens in SQL, never read-modify-write.
func (r *ProductRepository) IncrementInventory(ctx context.Context, id uuid.UUID, delta int64) error {
	query := `
		UPDATE products
		SET inventory_count = inventory_count + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, delta, id)
	if err != nil {
		r.logger.Error("Failed to adjust product inventory", "id", id.String(), "delta", delta, "error", err)
		return fmt.Errorf("failed to adjust product inventory: %w", err)
	}

	if result.RowsAffected() == 0 {
		return product.ErrProductNotFound{ProductID: id}
	}

	return nil
}

// DecrementInventory atomically subtracts units from inventory_count
func (r *ProductRepository) DecrementInventory(ctx context.Context, id uuid.UUID, units int64) error {
	query := `
		UPDATE products
		SET inventory_count = inventory_count - $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, units, id)
	if err != nil {
		r.logger.Error("Failed to decrement product inventory", "id", id.String(), "units", units, "error", err)
		return fmt.Errorf("failed to decrement product inventory: %w", err)
	}

	if result.RowsAffected() == 0 {
		return product.ErrProductNotFound{ProductID: id}
	}

	return nil
}
