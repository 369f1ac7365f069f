package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductServiceImpl implements the ProductService interface
type ProductServiceImpl struct {
	productRepo product.Repository
}

// NewProductService creates a new product service
func NewProductService(productRepo product.Repository) ProductService {
	return &ProductServiceImpl{
		productRepo: productRepo,
	}
}

// CreateProduct creates a new product in a store's catalog
func (s *ProductServiceImpl) CreateProduct(ctx context.Context, storeID, organizationID int64, name, sku string, price, cost decimal.Decimal, inventoryCount int64) (*product.Product, error) {
	p, err := product.NewProduct(storeID, organizationID, name, sku, price, cost, inventoryCount)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetProductByID retrieves a product by its ID, returns nil if not found
func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}
