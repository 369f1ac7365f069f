package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/transaction"
	"github.com/kwam1na/athena-commerce/internal/platform/persistence"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new transaction in the database
func (r *TransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	details, err := marshalDetails(txn.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction details: %w", err)
	}

	query := `
		INSERT INTO transactions (id, store_id, organization_id, user_id, status, report_title, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.querier.Exec(ctx, query,
		txn.ID,
		txn.StoreID,
		txn.OrganizationID,
		txn.UserID,
		txn.Status,
		txn.ReportTitle,
		details,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction", "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction with its items
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, store_id, organization_id, user_id, status, report_title, details, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	txn, err := r.scanTransaction(ctx, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := r.loadItems(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetPublished retrieves a transaction filtered to status published, with
// its items loaded. Returns (nil, nil) when no published row exists: a
// merely-pending transaction does not count as "existing" for change
// detection.
func (r *TransactionRepository) GetPublished(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, store_id, organization_id, user_id, status, report_title, details, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND status = $2
	`

	txn, err := r.scanTransaction(ctx, query, id, transaction.StatusPublished)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get published transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get published transaction: %w", err)
	}

	if err := r.loadItems(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// Publish updates the transaction with the given params and forces its
// status to published
func (r *TransactionRepository) Publish(ctx context.Context, id uuid.UUID, params transaction.PublishParams) error {
	details, err := marshalDetails(params.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction details: %w", err)
	}

	query := `
		UPDATE transactions
		SET status = $1, report_title = $2, details = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.querier.Exec(ctx, query,
		transaction.StatusPublished,
		params.ReportTitle,
		details,
		time.Now(),
		id,
	)
	if err != nil {
		r.logger.Error("Failed to publish transaction", "id", id.String(), "error", err)
		return fmt.Errorf("failed to publish transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: id}
	}

	return nil
}

// UpdateStatus sets the transaction status without touching report fields
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error {
	query := `
		UPDATE transactions
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.querier.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update transaction status", "id", id.String(), "status", string(status), "error", err)
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: id}
	}

	return nil
}

func (r *TransactionRepository) scanTransaction(ctx context.Context, query string, args ...interface{}) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	var details []byte
	err := r.querier.QueryRow(ctx, query, args...).Scan(
		&txn.ID,
		&txn.StoreID,
		&txn.OrganizationID,
		&txn.UserID,
		&txn.Status,
		&txn.ReportTitle,
		&details,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &txn.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction details: %w", err)
		}
	}

	return &txn, nil
}

func (r *TransactionRepository) loadItems(ctx context.Context, txn *transaction.Transaction) error {
	itemRepo := &TransactionItemRepository{querier: r.querier, logger: r.logger}
	items, err := itemRepo.ListByTransaction(ctx, txn.ID)
	if err != nil {
		return err
	}
	txn.Items = items
	return nil
}

func marshalDetails(details map[string]string) ([]byte, error) {
	if details == nil {
		return nil, nil
	}
	return json.Marshal(details)
}
