package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProjectionService for testing
type MockProjectionService struct {
	mock.Mock
}

func (m *MockProjectionService) ProjectSale(ctx context.Context, entry *saleshistory.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockDeadLetterPublisher for testing
type MockDeadLetterPublisher struct {
	mock.Mock
}

func (m *MockDeadLetterPublisher) PublishToDLQ(ctx context.Context, key string, value []byte, reason string) error {
	args := m.Called(ctx, key, value, reason)
	return args.Error(0)
}

func (m *MockDeadLetterPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestHandleMessage(t *testing.T) {
	mockProjectionService := &MockProjectionService{}
	mockDLQPublisher := &MockDeadLetterPublisher{}
	logger := slog.Default()

	handler := NewSaleEventHandler(logger, mockProjectionService, mockDLQPublisher)

	validEntry := &saleshistory.Entry{
		TransactionID:  uuid.New(),
		StoreID:        42,
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
		GrossTotal:    "74.97",
		CorrelationID: "corr1",
		PublishedAt:   time.Now(),
	}

	validJSON, err := json.Marshal(validEntry)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		key           []byte
		value         []byte
		setupMocks    func()
		expectedError error
	}{
		{
			name:  "successful projection",
			key:   []byte("test-key"),
			value: validJSON,
			setupMocks: func() {
				mockProjectionService.On("ProjectSale", mock.Anything, mock.MatchedBy(func(entry *saleshistory.Entry) bool {
					return entry.TransactionID == validEntry.TransactionID
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "projection error",
			key:   []byte("test-key"),
			value: validJSON,
			setupMocks: func() {
				mockProjectionService.On("ProjectSale", mock.Anything, mock.Anything).Return(errors.New("projection error"))
			},
			expectedError: errors.New("projecting sale"),
		},
		{
			name:  "unmarshal error with successful DLQ publish",
			key:   []byte("test-key"),
			value: []byte("invalid json"),
			setupMocks: func() {
				mockDLQPublisher.On("PublishToDLQ", mock.Anything, "test-key", []byte("invalid json"), mock.Anything).Return(nil)
			},
			expectedError: nil, // No error because message was successfully sent to DLQ
		},
		{
			name:  "unmarshal error with DLQ publish failure",
			key:   []byte("test-key"),
			value: []byte("invalid json"),
			setupMocks: func() {
				mockDLQPublisher.On("PublishToDLQ", mock.Anything, "test-key", []byte("invalid json"), mock.Anything).Return(errors.New("dlq error"))
			},
			expectedError: errors.New("failed to unmarshal"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProjectionService = &MockProjectionService{}
			mockDLQPublisher = &MockDeadLetterPublisher{}
			mockDLQPublisher.On("Close").Return(nil).Maybe()

			handler = NewSaleEventHandler(logger, mockProjectionService, mockDLQPublisher)

			tt.setupMocks()
			ctx := context.Background()

			err := handler.HandleMessage(ctx, tt.key, tt.value)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockProjectionService.AssertExpectations(t)
			mockDLQPublisher.AssertExpectations(t)
		})
	}
}
