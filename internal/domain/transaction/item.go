package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one product line within a transaction. The product reference is
// denormalized (name carried alongside the ID) for display and reporting.
type Item struct {
	ID             uuid.UUID       `json:"id"`
	TransactionID  uuid.UUID       `json:"transaction_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	UnitsSold      int64           `json:"units_sold"`
	StoreID        int64           `json:"store_id"`
	OrganizationID int64           `json:"organization_id"`
	UserID         uuid.UUID       `json:"user_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
