package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/kwam1na/athena-commerce/internal/pos_api/service"
)

// SalesHistoryHandler handles HTTP requests for the sales history projection
type SalesHistoryHandler struct {
	salesService service.SalesHistoryService
	logger       *slog.Logger
}

// NewSalesHistoryHandler creates a new sales history handler
func NewSalesHistoryHandler(logger *slog.Logger, salesService service.SalesHistoryService) *SalesHistoryHandler {
	return &SalesHistoryHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// GetByTransactionID retrieves the projected sale for a transaction,
// returning 404 if the transaction has no published sale yet
func (h *SalesHistoryHandler) GetByTransactionID(c *gin.Context) {
	idParam := c.Param("id")
	transactionID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	entry, err := h.salesService.GetSaleByTransactionID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, saleshistory.ErrEntryNotFound{}) {
			RespondNotFound(c, "Sale not found")
			return
		}
		h.logger.Error("Failed to get sale", "transaction_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// ListByStore retrieves a paginated list of published sales for a store
func (h *SalesHistoryHandler) ListByStore(c *gin.Context) {
	storeParam := c.Param("id")
	storeID, err := strconv.ParseInt(storeParam, 10, 64)
	if err != nil {
		h.logger.Error("Invalid store ID", "id", storeParam, "error", err)
		RespondBadRequest(c, "Invalid store ID")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	entries, total, err := h.salesService.GetSalesByStore(c.Request.Context(), storeID, pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list sales", "store_id", storeID, "error", err)
		RespondInternalError(c)
		return
	}

	sales := make([]SalesEntryResponse, 0, len(entries))
	for _, entry := range entries {
		sales = append(sales, mapEntryToResponse(entry))
	}

	RespondWithPaginatedData(c, http.StatusOK, SalesListResponse{Sales: sales}, pagination.Page, pagination.PerPage, int(total))
}

// mapEntryToResponse maps a sales history entry to a response DTO
func mapEntryToResponse(entry *saleshistory.Entry) SalesEntryResponse {
	lines := make([]SalesEntryLineResponse, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, SalesEntryLineResponse{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			UnitsSold:   line.UnitsSold,
			Price:       line.Price,
			Cost:        line.Cost,
		})
	}

	return SalesEntryResponse{
		TransactionID:  entry.TransactionID.String(),
		StoreID:        entry.StoreID,
		OrganizationID: entry.OrganizationID,
		UserID:         entry.UserID.String(),
		ReportTitle:    entry.ReportTitle,
		Lines:          lines,
		GrossTotal:     entry.GrossTotal,
		PublishedAt:    entry.PublishedAt.Format(time.RFC3339),
	}
}
