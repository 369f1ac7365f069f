package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	publisher "github.com/kwam1na/athena-commerce/internal/publisher/service"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	transactionRepo transaction.Repository
	publishService  publisher.PublishService
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo transaction.Repository, publishService publisher.PublishService) TransactionService {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		publishService:  publishService,
	}
}

// CreateTransaction opens a new pending transaction
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, storeID, organizationID int64, userID uuid.UUID) (*transaction.Transaction, error) {
	txn := transaction.NewTransaction(storeID, organizationID, userID)

	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransactionByID retrieves a transaction with its line items
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// PublishReport verifies the transaction exists and hands the submission to
// the publish engine
func (s *TransactionServiceImpl) PublishReport(ctx context.Context, request *report.PublishRequest) (*report.PublishResult, error) {
	if _, err := s.transactionRepo.GetByID(ctx, request.TransactionID); err != nil {
		return nil, err
	}

	return s.publishService.PublishReport(ctx, request)
}
