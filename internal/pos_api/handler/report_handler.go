package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/report"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/pos_api/middleware"
	"github.com/kwam1na/athena-commerce/internal/pos_api/service"
	"github.com/shopspring/decimal"
)

// ReportHandler handles HTTP requests for sale report publishing
type ReportHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, transactionService service.TransactionService) *ReportHandler {
	return &ReportHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Publish handles publishing of a sale report against a transaction. A
// rejected submission returns 400 with structured details so the client can
// correct the whole batch in one round trip.
func (h *ReportHandler) Publish(c *gin.Context) {
	idParam := c.Param("id")
	transactionID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	var req PublishReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	items, err := mapSubmittedItems(req.Items)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	publishRequest := &report.PublishRequest{
		TransactionID: transactionID,
		Items:         items,
		Params: transaction.PublishParams{
			ReportTitle: req.Title,
			Details:     req.Details,
		},
		UserID:        userID,
		CorrelationID: middleware.GetCorrelationID(c),
	}

	result, err := h.transactionService.PublishReport(c.Request.Context(), publishRequest)
	if err != nil {
		h.respondPublishError(c, transactionID, err)
		return
	}

	resultItems := make([]TransactionItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		resultItems = append(resultItems, mapItemToResponse(item))
	}

	RespondOK(c, PublishReportResponse{
		Status: result.Status,
		Items:  resultItems,
	})
}

// respondPublishError maps publish engine errors to HTTP responses
func (h *ReportHandler) respondPublishError(c *gin.Context, transactionID uuid.UUID, err error) {
	var txnNotFound transaction.ErrTransactionNotFound
	if errors.As(err, &txnNotFound) {
		RespondNotFound(c, "Transaction not found")
		return
	}

	var constraintErr report.InventoryConstraintError
	if errors.As(err, &constraintErr) {
		h.logger.Warn("Publish rejected by inventory constraints",
			"transaction_id", transactionID,
			"offending_items", len(constraintErr.OffendingItems),
		)
		RespondBadRequestWithDetails(c, "INVENTORY_CONSTRAINT_VIOLATION", constraintErr.Error(), gin.H{
			"offending_items": constraintErr.OffendingItems,
		})
		return
	}

	var productErr report.ProductNotFoundError
	if errors.As(err, &productErr) {
		h.logger.Warn("Publish rejected, product lookup failed",
			"transaction_id", transactionID,
			"product_id", productErr.ProductID,
		)
		RespondBadRequestWithDetails(c, "PRODUCT_NOT_FOUND", productErr.Error(), gin.H{
			"product_id":   productErr.ProductID.String(),
			"product_name": productErr.ProductName,
		})
		return
	}

	var genericErr report.GenericTransactionError
	if errors.As(err, &genericErr) {
		RespondBadRequest(c, genericErr.Error())
		return
	}

	h.logger.Error("Failed to publish report", "transaction_id", transactionID, "error", err)
	RespondInternalError(c)
}

// mapSubmittedItems converts the wire form of submitted items into domain
// items, parsing the string-typed monetary and identifier fields
func mapSubmittedItems(items []PublishItemRequest) ([]report.SubmittedItem, error) {
	submitted := make([]report.SubmittedItem, 0, len(items))
	for i, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid product ID %q", i, item.ProductID)
		}

		var itemID *uuid.UUID
		if item.ID != nil {
			parsed, err := uuid.Parse(*item.ID)
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid item ID %q", i, *item.ID)
			}
			itemID = &parsed
		}

		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid price %q", i, item.Price)
		}

		cost, err := decimal.NewFromString(item.Cost)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid cost %q", i, item.Cost)
		}

		storeID, err := strconv.ParseInt(item.StoreID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid store ID %q", i, item.StoreID)
		}

		organizationID, err := strconv.ParseInt(item.OrganizationID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid organization ID %q", i, item.OrganizationID)
		}

		submitted = append(submitted, report.SubmittedItem{
			ID:             itemID,
			ProductID:      productID,
			ProductName:    item.ProductName,
			Price:          price,
			Cost:           cost,
			UnitsSold:      item.UnitsSold,
			StoreID:        storeID,
			OrganizationID: organizationID,
		})
	}
	return submitted, nil
}
