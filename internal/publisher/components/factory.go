package components

import (
	"log/slog"

	"github.com/kwam1na/athena-commerce/internal/domain/outbox"
	"github.com/kwam1na/athena-commerce/internal/domain/product"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/platform/persistence"
	"github.com/kwam1na/athena-commerce/internal/publisher/service"
)

// CreatePublishService creates a new PublishService with all its dependencies.
func CreatePublishService(
	pgDB *persistence.PostgresDB,
	transactionRepo transaction.Repository,
	itemRepo transaction.ItemRepository,
	productRepo product.Repository,
	outboxRepo outbox.Repository,
	logger *slog.Logger,
) service.PublishService {
	detector := NewChangeDetector(logger)
	checker := NewConstraintChecker(productRepo, logger)
	reconciler := NewItemReconciler(itemRepo, productRepo, logger)
	outboxManager := NewOutboxManager(outboxRepo, logger)

	return service.NewPublishService(
		pgDB,
		transactionRepo,
		detector,
		checker,
		reconciler,
		outboxManager,
		logger,
	)
}
