package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"log/slog"

	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBaseProjectionService mocks the ProjectionService interface
type MockBaseProjectionService struct {
	mock.Mock
}

func (m *MockBaseProjectionService) ProjectSale(ctx context.Context, entry *saleshistory.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestWorkerPoolProjectionService_ProjectSale(t *testing.T) {
	logger := slog.Default()
	entry := projectedEntry()

	tests := []struct {
		name          string
		setupMocks    func(m *MockBaseProjectionService)
		expectedError error
	}{
		{
			name: "successful projection",
			setupMocks: func(m *MockBaseProjectionService) {
				m.On("ProjectSale", mock.Anything, entry).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "projection error",
			setupMocks: func(m *MockBaseProjectionService) {
				m.On("ProjectSale", mock.Anything, entry).Return(errors.New("projection error")).Once()
			},
			expectedError: errors.New("projection error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBaseService := &MockBaseProjectionService{}

			workerPoolService, err := NewWorkerPoolProjectionService(
				mockBaseService,
				WorkerPoolConfig{
					Size: 2,
				},
				logger,
			)
			assert.NoError(t, err)
			defer workerPoolService.Shutdown()

			tt.setupMocks(mockBaseService)
			ctx := context.Background()

			err = workerPoolService.ProjectSale(ctx, entry)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockBaseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolProjectionService_ConcurrentProjections(t *testing.T) {
	logger := slog.Default()

	mockBaseService := &MockBaseProjectionService{}
	workerPoolService, err := NewWorkerPoolProjectionService(
		mockBaseService,
		WorkerPoolConfig{
			Size: 4,
		},
		logger,
	)
	assert.NoError(t, err)
	defer workerPoolService.Shutdown()

	const events = 8
	mockBaseService.On("ProjectSale", mock.Anything, mock.Anything).Return(nil).Times(events)

	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, workerPoolService.ProjectSale(context.Background(), projectedEntry()))
		}()
	}
	wg.Wait()

	mockBaseService.AssertExpectations(t)
	assert.Equal(t, 4, workerPoolService.Capacity())
}
