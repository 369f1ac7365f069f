package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Status defines the lifecycle states of a POS transaction
type Status string

const (
	StatusPending         Status = "pending"
	StatusPublished       Status = "published"
	StatusPendingRollback Status = "pending-rollback"
)

// Transaction represents one POS sale report and its line items
type Transaction struct {
	ID             uuid.UUID         `json:"id"`
	StoreID        int64             `json:"store_id"`
	OrganizationID int64             `json:"organization_id"`
	UserID         uuid.UUID         `json:"user_id"`
	Status         Status            `json:"status"`
	ReportTitle    string            `json:"report_title,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Items          []*Item           `json:"items,omitempty"`
}

// NewTransaction opens a new pending transaction for a sale in progress
func NewTransaction(storeID, organizationID int64, userID uuid.UUID) *Transaction {
	now := time.Now()
	return &Transaction{
		ID:             uuid.New(),
		StoreID:        storeID,
		OrganizationID: organizationID,
		UserID:         userID,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ItemByID returns the loaded item with the given ID, or nil
func (t *Transaction) ItemByID(id uuid.UUID) *Item {
	for _, item := range t.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// ItemIDSet returns the set of item IDs currently on the transaction
func (t *Transaction) ItemIDSet() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, len(t.Items))
	for _, item := range t.Items {
		ids[item.ID] = struct{}{}
	}
	return ids
}

// PublishParams carries the fields written to a transaction when a report
// is published. Status is always forced to published alongside these.
type PublishParams struct {
	ReportTitle string
	Details     map[string]string
}
