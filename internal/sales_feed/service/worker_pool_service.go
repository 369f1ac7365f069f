package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolProjectionService implements the ProjectionService interface
// on top of a bounded worker pool
type WorkerPoolProjectionService struct {
	baseService ProjectionService
	pool        *ants.Pool
	logger      *slog.Logger
	// Use a mutex to protect access to the results map
	mu      sync.Mutex
	results map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProjectionService(
	baseService ProjectionService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProjectionService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProjectionService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ProjectSale submits a sale event to the worker pool for projection.
func (s *WorkerPoolProjectionService) ProjectSale(ctx context.Context, entry *saleshistory.Entry) error {
	logger := s.logger
	if entry.CorrelationID != "" {
		logger = s.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Info("Submitting sale event to worker pool",
		"transaction_id", entry.TransactionID.String(),
		"store_id", entry.StoreID,
	)

	// Create a channel to receive the result of the projection
	resultChan := make(chan error, 1)

	transactionID := entry.TransactionID.String()
	s.mu.Lock()
	s.results[transactionID] = resultChan
	s.mu.Unlock()

	// Create a copy of the entry to avoid data races
	entryCopy := *entry

	err := s.pool.Submit(func() {
		err := s.baseService.ProjectSale(ctx, &entryCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, transactionID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		// If we couldn't submit the task to the pool, remove the result channel
		s.mu.Lock()
		delete(s.results, transactionID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit sale event to worker pool",
			"transaction_id", entry.TransactionID.String(),
			"error", err,
		)
		return err
	}

	// Wait for the result from the worker
	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProjectionService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProjectionService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProjectionService) Capacity() int {
	return s.pool.Cap()
}
