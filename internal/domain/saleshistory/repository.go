package saleshistory

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages sales history persistence with pagination support
type Repository interface {
	// Upsert stores an entry, replacing any existing document for the same
	// transaction ID. Re-publishing a corrected report overwrites the
	// previous projection rather than duplicating it.
	Upsert(ctx context.Context, entry *Entry) error

	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Entry, error)
	ListByStore(ctx context.Context, storeID int64, limit, offset int) ([]*Entry, error)
	CountByStore(ctx context.Context, storeID int64) (int64, error)
}

// ErrEntryNotFound indicates a missing sales history entry
type ErrEntryNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "sales history entry not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}
