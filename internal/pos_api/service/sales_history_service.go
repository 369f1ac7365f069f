package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
)

// SalesHistoryServiceImpl implements the SalesHistoryService interface
type SalesHistoryServiceImpl struct {
	salesRepo saleshistory.Repository
}

// NewSalesHistoryService creates a new sales history service
func NewSalesHistoryService(salesRepo saleshistory.Repository) SalesHistoryService {
	return &SalesHistoryServiceImpl{
		salesRepo: salesRepo,
	}
}

// GetSaleByTransactionID retrieves the projected entry for a transaction
func (s *SalesHistoryServiceImpl) GetSaleByTransactionID(ctx context.Context, transactionID uuid.UUID) (*saleshistory.Entry, error) {
	return s.salesRepo.GetByTransactionID(ctx, transactionID)
}

// GetSalesByStore retrieves a paginated list of sales for a store along with
// the total entry count
func (s *SalesHistoryServiceImpl) GetSalesByStore(ctx context.Context, storeID int64, page, perPage int) ([]*saleshistory.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.salesRepo.ListByStore(ctx, storeID, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales for store %d: %w", storeID, err)
	}

	total, err := s.salesRepo.CountByStore(ctx, storeID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sales for store %d: %w", storeID, err)
	}

	return entries, total, nil
}
