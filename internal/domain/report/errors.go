package report

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ProductNotFoundError indicates the product lookup failed during
// constraint checking. Fatal to the whole batch, not a per-item warning.
type ProductNotFoundError struct {
	ProductID   uuid.UUID
	ProductName string
	Err         error
}

func (e ProductNotFoundError) Error() string {
	msg := "product lookup failed: " + e.ProductID.String()
	if e.ProductName != "" {
		msg += " (" + e.ProductName + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ProductNotFoundError) Unwrap() error {
	return e.Err
}

// InventoryConstraintError carries every offending item detected in one
// submission, so the caller can correct the whole batch in one round trip.
type InventoryConstraintError struct {
	OffendingItems []OffendingItem
}

func (e InventoryConstraintError) Error() string {
	return "inventory constraint violated by " + strconv.Itoa(len(e.OffendingItems)) + " item(s)"
}

// GenericTransactionError indicates a structurally invalid submission
type GenericTransactionError struct {
	Details string
}

func (e GenericTransactionError) Error() string {
	if e.Details == "" {
		return "invalid publish submission"
	}
	return fmt.Sprintf("invalid publish submission: %s", e.Details)
}
