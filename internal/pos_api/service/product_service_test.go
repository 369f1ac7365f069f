package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepo) IncrementInventory(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductRepo) DecrementInventory(ctx context.Context, id uuid.UUID, units int64) error {
	args := m.Called(ctx, id, units)
	return args.Error(0)
}

func (m *MockProductRepo) WithTx(tx pgx.Tx) product.Repository {
	args := m.Called(tx)
	return args.Get(0).(product.Repository)
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockProductRepo)
		svc := NewProductService(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *product.Product) bool {
			return p.Name == "Espresso Beans 1kg" &&
				p.SKU == "ESP-1KG" &&
				p.StoreID == int64(42) &&
				p.InventoryCount == int64(120) &&
				p.ID != uuid.Nil
		})).Return(nil)

		p, err := svc.CreateProduct(context.Background(), 42, 7, "Espresso Beans 1kg", "ESP-1KG",
			decimal.RequireFromString("24.99"), decimal.RequireFromString("11.50"), 120)

		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Espresso Beans 1kg", p.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		mockRepo := new(MockProductRepo)
		svc := NewProductService(mockRepo)

		_, err := svc.CreateProduct(context.Background(), 42, 7, "", "ESP-1KG",
			decimal.RequireFromString("24.99"), decimal.RequireFromString("11.50"), 120)

		assert.ErrorIs(t, err, product.ErrEmptyName)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		mockRepo := new(MockProductRepo)
		svc := NewProductService(mockRepo)

		_, err := svc.CreateProduct(context.Background(), 42, 7, "Espresso Beans 1kg", "ESP-1KG",
			decimal.RequireFromString("-1"), decimal.RequireFromString("11.50"), 120)

		assert.ErrorIs(t, err, product.ErrNegativePrice)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockRepo := new(MockProductRepo)
		svc := NewProductService(mockRepo)

		dbErr := errors.New("database unavailable")
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := svc.CreateProduct(context.Background(), 42, 7, "Espresso Beans 1kg", "ESP-1KG",
			decimal.RequireFromString("24.99"), decimal.RequireFromString("11.50"), 120)

		assert.ErrorIs(t, err, dbErr)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockProductRepo)
		svc := NewProductService(mockRepo)

		productID := uuid.New()
		expected := &product.Product{ID: productID, Name: "Espresso Beans 1kg"}
		mockRepo.On("GetByID", mock.Anything, productID).Return(expected, nil)

		p, err := svc.GetProductByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, expected, p)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		mockRepo := new(MockProductRepo)
		svc := NewProductService(mockRepo)

		productID := uuid.New()
		mockRepo.On("GetByID", mock.Anything, productID).Return(nil, nil)

		p, err := svc.GetProductByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Nil(t, p)
		mockRepo.AssertExpectations(t)
	})
}

var _ product.Repository = (*MockProductRepo)(nil)
