// Package mongo provides MongoDB implementations of the read-side
// repositories backing the sales history projection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kwam1na/athena-commerce/internal/domain/saleshistory"
)

const (
	// SalesHistoryCollectionName is the name of the sales history collection in MongoDB
	SalesHistoryCollectionName = "sales_history"
)

// SalesHistoryRepository implements the saleshistory.Repository interface for MongoDB
type SalesHistoryRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewSalesHistoryRepository creates a new MongoDB sales history repository
func NewSalesHistoryRepository(logger *slog.Logger, db *mongo.Database) saleshistory.Repository {
	return &SalesHistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores a sales history entry keyed by transaction ID. Replaying the
// same sale event, or projecting a corrected re-publish, replaces the
// existing document so the collection never holds duplicates.
func (r *SalesHistoryRepository) Upsert(ctx context.Context, entry *saleshistory.Entry) error {
	collection := r.db.Collection(SalesHistoryCollectionName)

	filter := bson.M{"transaction_id": entry.TransactionID}
	opts := options.Replace().SetUpsert(true)

	_, err := collection.ReplaceOne(ctx, filter, entry, opts)
	if err != nil {
		r.logger.Error("Failed to upsert sales history entry",
			"transaction_id", entry.TransactionID.String(),
			"error", err)
		return fmt.Errorf("failed to upsert sales history entry: %w", err)
	}

	return nil
}

// GetByTransactionID retrieves a sales history entry by its transaction ID.
// Returns ErrEntryNotFound if no entry exists for the given transaction.
func (r *SalesHistoryRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*saleshistory.Entry, error) {
	collection := r.db.Collection(SalesHistoryCollectionName)

	filter := bson.M{"transaction_id": transactionID}
	var entry saleshistory.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, saleshistory.ErrEntryNotFound{TransactionID: transactionID}
		}
		r.logger.Error("Failed to get sales history entry",
			"transaction_id", transactionID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get sales history entry: %w", err)
	}

	return &entry, nil
}

// ListByStore retrieves paginated sales history entries for a store.
// Results are sorted by publish time in descending order (newest first).
func (r *SalesHistoryRepository) ListByStore(ctx context.Context, storeID int64, limit, offset int) ([]*saleshistory.Entry, error) {
	collection := r.db.Collection(SalesHistoryCollectionName)

	filter := bson.M{"store_id": storeID}
	opts := options.Find().
		SetSort(bson.M{"published_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list sales history entries",
			"store_id", storeID,
			"error", err)
		return nil, fmt.Errorf("failed to list sales history entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*saleshistory.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode sales history entries",
			"store_id", storeID,
			"error", err)
		return nil, fmt.Errorf("failed to decode sales history entries: %w", err)
	}

	return entries, nil
}

// CountByStore counts the total number of sales history entries for a store
func (r *SalesHistoryRepository) CountByStore(ctx context.Context, storeID int64) (int64, error) {
	collection := r.db.Collection(SalesHistoryCollectionName)

	filter := bson.M{"store_id": storeID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count sales history entries",
			"store_id", storeID,
			"error", err)
		return 0, fmt.Errorf("failed to count sales history entries: %w", err)
	}

	return count, nil
}
