package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/pos_api/service"
)

// TransactionHandler handles HTTP requests for POS transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create handles opening of a new pending transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
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

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req.StoreID, req.OrganizationID, userID)
	if err != nil {
		h.logger.Error("Failed to create transaction", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapTransactionToResponse(txn))
}

// GetByID retrieves a transaction with its line items, returning 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		var notFound transaction.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(txn))
}

// mapTransactionToResponse maps a transaction entity to a response DTO
func mapTransactionToResponse(txn *transaction.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(txn.Items))
	for _, item := range txn.Items {
		items = append(items, mapItemToResponse(item))
	}

	return TransactionResponse{
		ID:             txn.ID.String(),
		StoreID:        txn.StoreID,
		OrganizationID: txn.OrganizationID,
		UserID:         txn.UserID.String(),
		Status:         string(txn.Status),
		ReportTitle:    txn.ReportTitle,
		Details:        txn.Details,
		Items:          items,
		CreatedAt:      txn.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      txn.UpdatedAt.Format(time.RFC3339),
	}
}

// mapItemToResponse maps a transaction item entity to a response DTO
func mapItemToResponse(item *transaction.Item) TransactionItemResponse {
	return TransactionItemResponse{
		ID:             item.ID.String(),
		ProductID:      item.ProductID.String(),
		ProductName:    item.ProductName,
		Price:          item.Price.String(),
		Cost:           item.Cost.String(),
		UnitsSold:      item.UnitsSold,
		StoreID:        item.StoreID,
		OrganizationID: item.OrganizationID,
	}
}
