package components

import (
	"context"
	"testing"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/platform/persistence"
	"github.com/kwam1na/athena-commerce/internal/publisher/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Reusing MockProductRepo, MockItemRepo, and MockOutboxRepo from the other
// test files in this package.

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, txn *transaction.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetPublished(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) Publish(ctx context.Context, id uuid.UUID, params transaction.PublishParams) error {
	args := m.Called(ctx, id, params)
	return args.Error(0)
}

func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTransactionRepo) WithTx(tx pgx.Tx) transaction.Repository {
	args := m.Called(tx)
	return args.Get(0).(transaction.Repository)
}

func TestCreatePublishService(t *testing.T) {
	mockPgDB := &persistence.PostgresDB{}
	mockTransactionRepo := &MockTransactionRepo{}
	mockItemRepo := &MockItemRepo{}
	mockProductRepo := &MockProductRepo{}
	mockOutboxRepo := &MockOutboxRepo{}
	logger := slog.Default()

	publishService := CreatePublishService(
		mockPgDB,
		mockTransactionRepo,
		mockItemRepo,
		mockProductRepo,
		mockOutboxRepo,
		logger,
	)

	assert.NotNil(t, publishService)

	_, ok := publishService.(service.PublishService)
	assert.True(t, ok)
}
