package service

import (
	"context"

	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
)

// ProjectionService defines the interface for projecting published sales
// into the sales history read model.
type ProjectionService interface {
	ProjectSale(ctx context.Context, entry *saleshistory.Entry) error
}
