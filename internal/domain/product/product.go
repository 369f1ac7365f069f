package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrEmptyName         = errors.New("product name cannot be empty")
	ErrNegativeInventory = errors.New("inventory count cannot be negative")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrNegativeCost      = errors.New("cost cannot be negative")
)

// Product represents a sellable item tracked per store
type Product struct {
	ID             uuid.UUID       `json:"id"`
	StoreID        int64           `json:"store_id"`
	OrganizationID int64           `json:"organization_id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	InventoryCount int64           `json:"inventory_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewProduct creates a new product with the given parameters
func NewProduct(storeID, organizationID int64, name, sku string, price, cost decimal.Decimal, inventoryCount int64) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if inventoryCount < 0 {
		return nil, ErrNegativeInventory
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if cost.IsNegative() {
		return nil, ErrNegativeCost
	}

	now := time.Now()
	return &Product{
		ID:             uuid.New(),
		StoreID:        storeID,
		OrganizationID: organizationID,
		Name:           name,
		SKU:            sku,
		Price:          price,
		Cost:           cost,
		InventoryCount: inventoryCount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanSell checks whether the requested quantity is covered by current stock
func (p *Product) CanSell(unitsSold int64) bool {
	return p.InventoryCount >= unitsSold
}
