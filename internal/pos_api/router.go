package pos_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kwam1na/athena-commerce/internal/pos_api/handler"
	"github.com/kwam1na/athena-commerce/internal/pos_api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	productHandler *handler.ProductHandler,
	transactionHandler *handler.TransactionHandler,
	reportHandler *handler.ReportHandler,
	salesHistoryHandler *handler.SalesHistoryHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Product catalog operations
		products := v1.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("/:id", productHandler.GetByID)
		}

		// POS transaction operations
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.POST("/:id/publish", reportHandler.Publish)
			transactions.GET("/:id/sale", salesHistoryHandler.GetByTransactionID)
		}

		// Sales history queries
		stores := v1.Group("/stores")
		{
			stores.GET("/:id/sales", salesHistoryHandler.ListByStore)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
