package saleshistory

import (
	"time"

	"github.com/google/uuid"
)

// Line is one sold product line inside a history entry. Monetary amounts
// are decimal strings so the document round-trips cleanly through BSON.
type Line struct {
	ProductID   uuid.UUID `json:"product_id" bson:"product_id"`
	ProductName string    `json:"product_name" bson:"product_name"`
	UnitsSold   int64     `json:"units_sold" bson:"units_sold"`
	Price       string    `json:"price" bson:"price"`
	Cost        string    `json:"cost" bson:"cost"`
}

// Entry is one published sale report projected into the sales history
// collection. One document per transaction; re-publishes replace it.
type Entry struct {
	TransactionID  uuid.UUID `json:"transaction_id" bson:"transaction_id"`
	StoreID        int64     `json:"store_id" bson:"store_id"`
	OrganizationID int64     `json:"organization_id" bson:"organization_id"`
	UserID         uuid.UUID `json:"user_id" bson:"user_id"`
	ReportTitle    string    `json:"report_title,omitempty" bson:"report_title,omitempty"`
	Lines          []Line    `json:"lines" bson:"lines"`
	GrossTotal     string    `json:"gross_total" bson:"gross_total"`
	CorrelationID  string    `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	PublishedAt    time.Time `json:"published_at" bson:"published_at"`
}
