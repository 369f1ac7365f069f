package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/kwam1na/athena-commerce/internal/pos_api/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSalesHistoryService struct {
	mock.Mock
}

func (m *MockSalesHistoryService) GetSaleByTransactionID(ctx context.Context, transactionID uuid.UUID) (*saleshistory.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saleshistory.Entry), args.Error(1)
}

func (m *MockSalesHistoryService) GetSalesByStore(ctx context.Context, storeID int64, page, perPage int) ([]*saleshistory.Entry, int64, error) {
	args := m.Called(ctx, storeID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*saleshistory.Entry), args.Get(1).(int64), args.Error(2)
}

func testSalesEntry(storeID int64) *saleshistory.Entry {
	return &saleshistory.Entry{
		TransactionID:  uuid.New(),
		StoreID:        storeID,
		OrganizationID: 7,
		UserID:         uuid.New(),
		ReportTitle:    "Morning shift",
		Lines: []saleshistory.Line{
			{
				ProductID:   uuid.New(),
				ProductName: "Espresso Beans 1kg",
				UnitsSold:   3,
				Price:       "24.99",
				Cost:        "11.50",
			},
		},
		GrossTotal:  "74.97",
		PublishedAt: time.Now(),
	}
}

func TestSalesHistoryHandler_GetByTransactionID(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		entry := testSalesEntry(42)
		mockService.On("GetSaleByTransactionID", mock.Anything, entry.TransactionID).Return(entry, nil)

		router := setupTestRouter()
		router.GET("/transactions/:id/sale", handler.GetByTransactionID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+entry.TransactionID.String()+"/sale", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var topLevelResponse Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &topLevelResponse))
		require.NotNil(t, topLevelResponse.Data)

		var responseBody SalesEntryResponse
		dataBytes, _ := json.Marshal(topLevelResponse.Data)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))

		assert.Equal(t, entry.TransactionID.String(), responseBody.TransactionID)
		assert.Equal(t, "74.97", responseBody.GrossTotal)
		require.Len(t, responseBody.Lines, 1)
		assert.Equal(t, "Espresso Beans 1kg", responseBody.Lines[0].ProductName)

		mockService.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/transactions/:id/sale", handler.GetByTransactionID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/not-a-uuid/sale", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("SaleNotFound", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		txnID := uuid.New()
		mockService.On("GetSaleByTransactionID", mock.Anything, txnID).
			Return(nil, saleshistory.ErrEntryNotFound{TransactionID: txnID})

		router := setupTestRouter()
		router.GET("/transactions/:id/sale", handler.GetByTransactionID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+txnID.String()+"/sale", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		txnID := uuid.New()
		mockService.On("GetSaleByTransactionID", mock.Anything, txnID).Return(nil, errors.New("mongo unavailable"))

		router := setupTestRouter()
		router.GET("/transactions/:id/sale", handler.GetByTransactionID)

		req, _ := http.NewRequest(http.MethodGet, "/transactions/"+txnID.String()+"/sale", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestSalesHistoryHandler_ListByStore(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		entries := []*saleshistory.Entry{testSalesEntry(42), testSalesEntry(42)}
		mockService.On("GetSalesByStore", mock.Anything, int64(42), 2, 10).Return(entries, int64(25), nil)

		router := setupTestRouter()
		router.GET("/stores/:id/sales", handler.ListByStore)

		req, _ := http.NewRequest(http.MethodGet, "/stores/42/sales?page=2&per_page=10", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var topLevelResponse Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &topLevelResponse))
		require.NotNil(t, topLevelResponse.Data)
		require.NotNil(t, topLevelResponse.Meta)

		assert.Equal(t, 2, topLevelResponse.Meta.Page)
		assert.Equal(t, 10, topLevelResponse.Meta.PerPage)
		assert.Equal(t, 25, topLevelResponse.Meta.TotalItems)
		assert.Equal(t, 3, topLevelResponse.Meta.TotalPages)

		var responseBody SalesListResponse
		dataBytes, _ := json.Marshal(topLevelResponse.Data)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))
		assert.Len(t, responseBody.Sales, 2)

		mockService.AssertExpectations(t)
	})

	t.Run("DefaultPagination", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		mockService.On("GetSalesByStore", mock.Anything, int64(42), 1, 10).
			Return([]*saleshistory.Entry{}, int64(0), nil)

		router := setupTestRouter()
		router.GET("/stores/:id/sales", handler.ListByStore)

		req, _ := http.NewRequest(http.MethodGet, "/stores/42/sales", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidStoreID", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/stores/:id/sales", handler.ListByStore)

		req, _ := http.NewRequest(http.MethodGet, "/stores/main-street/sales", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockSalesHistoryService)
		handler := NewSalesHistoryHandler(logger, mockService)

		mockService.On("GetSalesByStore", mock.Anything, int64(42), 1, 10).
			Return(nil, int64(0), errors.New("mongo unavailable"))

		router := setupTestRouter()
		router.GET("/stores/:id/sales", handler.ListByStore)

		req, _ := http.NewRequest(http.MethodGet, "/stores/42/sales", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

var _ service.SalesHistoryService = (*MockSalesHistoryService)(nil)
