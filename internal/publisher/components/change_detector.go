// Package components provides the building blocks of the report publishing
// pipeline wired together by the publisher service.
package components

import (
	"log/slog"

	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/publisher/service"
)

// ChangeDetectorImpl implements the ChangeDetector interface
type ChangeDetectorImpl struct {
	logger *slog.Logger
}

// NewChangeDetector creates a new ChangeDetectorImpl
func NewChangeDetector(logger *slog.Logger) service.ChangeDetector {
	return &ChangeDetectorImpl{logger: logger}
}

// HasChanged reports whether the submission differs materially from the
// previously published transaction. A first publish (no existing
// transaction) is always a change. Items present in the existing
// transaction but absent from the submission are not treated as a change;
// line items are adjusted, never retracted.
func (d *ChangeDetectorImpl) HasChanged(submitted []report.SubmittedItem, existing *transaction.Transaction) bool {
	if existing == nil {
		return true
	}

	existingIDs := existing.ItemIDSet()

	for _, item := range submitted {
		// A submitted item without an identifier, or with one the existing
		// transaction does not carry, is a new line item
		if item.ID == nil {
			return true
		}
		if _, ok := existingIDs[*item.ID]; !ok {
			return true
		}
	}

	for _, item := range submitted {
		existingItem := existing.ItemByID(*item.ID)
		if existingItem != nil && existingItem.UnitsSold != item.UnitsSold {
			return true
		}
	}

	return false
}
