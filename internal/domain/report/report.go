// Package report holds the types exchanged with the report publishing
// engine: the submitted line items, the offending-item records produced by
// inventory constraint checking, and the publish error kinds.
package report

import (
	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// SubmittedItem is one line of a publish submission. A nil ID means the
// item has not been persisted yet; a non-nil ID refers to an item of a
// previously published version of the same transaction.
type SubmittedItem struct {
	ID             *uuid.UUID      `json:"id,omitempty"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	UnitsSold      int64           `json:"units_sold"`
	StoreID        int64           `json:"store_id"`
	OrganizationID int64           `json:"organization_id"`
}

// PublishRequest carries one report-publish submission through the engine
type PublishRequest struct {
	TransactionID uuid.UUID
	Items         []SubmittedItem
	Params        transaction.PublishParams
	UserID        uuid.UUID
	CorrelationID string
}

// PublishResult is the success payload of a publish
type PublishResult struct {
	Status string              `json:"status"`
	Items  []*transaction.Item `json:"transaction_items"`
}

// OffendingItem flags one line item whose requested quantity would oversell
// available inventory. The new-item variant carries ProvidedUnitsSold; the
// modification variant carries UpdatedProvidedUnitsSold and
// ExistingUnitsSold. Never persisted.
type OffendingItem struct {
	ProductID                uuid.UUID `json:"product_id"`
	ProductName              string    `json:"product_name"`
	InventoryCount           int64     `json:"inventory_count"`
	ProvidedUnitsSold        *int64    `json:"provided_units_sold,omitempty"`
	UpdatedProvidedUnitsSold *int64    `json:"updated_provided_units_sold,omitempty"`
	ExistingUnitsSold        *int64    `json:"existing_units_sold,omitempty"`
}

// NewItemOffense builds the offending record for a brand-new line item
func NewItemOffense(productID uuid.UUID, productName string, inventoryCount, providedUnitsSold int64) OffendingItem {
	return OffendingItem{
		ProductID:         productID,
		ProductName:       productName,
		InventoryCount:    inventoryCount,
		ProvidedUnitsSold: &providedUnitsSold,
	}
}

// ModifiedItemOffense builds the offending record for a modified line item
func ModifiedItemOffense(productID uuid.UUID, productName string, inventoryCount, updatedUnitsSold, existingUnitsSold int64) OffendingItem {
	return OffendingItem{
		ProductID:                productID,
		ProductName:              productName,
		InventoryCount:           inventoryCount,
		UpdatedProvidedUnitsSold: &updatedUnitsSold,
		ExistingUnitsSold:        &existingUnitsSold,
	}
}
