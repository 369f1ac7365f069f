package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/kwam1na/athena-commerce/internal/pos_api/service"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(logger *slog.Logger, productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// Create handles creation of a new product, parsing monetary values from
// their decimal string form
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		RespondBadRequest(c, "Invalid price: "+req.Price)
		return
	}

	cost, err := decimal.NewFromString(req.Cost)
	if err != nil {
		RespondBadRequest(c, "Invalid cost: "+req.Cost)
		return
	}

	p, err := h.productService.CreateProduct(c.Request.Context(), req.StoreID, req.OrganizationID, req.Name, req.SKU, price, cost, req.InventoryCount)
	if err != nil {
		switch err {
		case product.ErrEmptyName, product.ErrNegativeInventory, product.ErrNegativePrice, product.ErrNegativeCost:
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create product", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapProductToResponse(p))
}

// GetByID retrieves a product by its ID, returning 404 if not found
func (h *ProductHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid product ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid product ID")
		return
	}

	p, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get product", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}
	if p == nil {
		RespondNotFound(c, "Product not found")
		return
	}

	RespondOK(c, mapProductToResponse(p))
}

// mapProductToResponse maps a product entity to a product response DTO
func mapProductToResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID.String(),
		StoreID:        p.StoreID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		SKU:            p.SKU,
		Price:          p.Price.String(),
		Cost:           p.Cost.String(),
		InventoryCount: p.InventoryCount,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}
