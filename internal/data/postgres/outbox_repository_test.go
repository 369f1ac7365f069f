package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kwam1na/athena-commerce/internal/domain/outbox"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	msg := &outbox.Message{
		TransactionID: uuid.New(),
		StoreID:       42,
		Payload:       json.RawMessage(`{"transaction_id":"x"}`),
		Status:        outbox.StatusPending,
		Attempts:      0,
		CreatedAt:     time.Now(),
	}

	query := `
		INSERT INTO sale_event_outbox \(transaction_id, store_id, payload, status, attempts, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
		RETURNING id
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(msg.TransactionID, msg.StoreID, msg.Payload, msg.Status, msg.Attempts, msg.CreatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(17)))

		err := repo.Create(ctx, msg)
		assert.NoError(t, err)
		assert.Equal(t, int64(17), msg.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectQuery(query).
			WithArgs(msg.TransactionID, msg.StoreID, msg.Payload, msg.Status, msg.Attempts, msg.CreatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, msg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create outbox message")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_GetPending(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}
	now := time.Now()

	query := `
		SELECT id, transaction_id, store_id, payload, status, attempts, created_at, last_attempt_at
		FROM sale_event_outbox
		WHERE status = \$1
		ORDER BY created_at ASC
		LIMIT \$2
	`
	columns := []string{"id", "transaction_id", "store_id", "payload", "status", "attempts", "created_at", "last_attempt_at"}

	t.Run("success", func(t *testing.T) {
		firstID := uuid.New()
		secondID := uuid.New()
		rows := pgxmock.NewRows(columns).
			AddRow(int64(1), firstID, int64(42), json.RawMessage(`{"a":1}`), outbox.StatusPending, 0, now, (*time.Time)(nil)).
			AddRow(int64(2), secondID, int64(42), json.RawMessage(`{"b":2}`), outbox.StatusPending, 2, now, &now)
		mock.ExpectQuery(query).WithArgs(outbox.StatusPending, 10).WillReturnRows(rows)

		messages, err := repo.GetPending(ctx, 10)
		assert.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, int64(1), messages[0].ID)
		assert.Equal(t, firstID, messages[0].TransactionID)
		assert.Nil(t, messages[0].LastAttemptAt)
		assert.Equal(t, 2, messages[1].Attempts)
		require.NotNil(t, messages[1].LastAttemptAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(outbox.StatusPending, 10).WillReturnRows(pgxmock.NewRows(columns))

		messages, err := repo.GetPending(ctx, 10)
		assert.NoError(t, err)
		assert.Empty(t, messages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("pending db error")
		mock.ExpectQuery(query).WithArgs(outbox.StatusPending, 10).WillReturnError(dbErr)

		messages, err := repo.GetPending(ctx, 10)
		assert.Error(t, err)
		assert.Nil(t, messages)
		assert.Contains(t, err.Error(), "failed to get pending outbox messages")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}
	msgID := int64(17)

	query := `
		UPDATE sale_event_outbox
		SET status = \$1, last_attempt_at = \$2
		WHERE id = \$3
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(outbox.StatusProcessed, pgxmock.AnyArg(), msgID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(ctx, msgID, outbox.StatusProcessed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(outbox.StatusFailedToPublish, pgxmock.AnyArg(), msgID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, msgID, outbox.StatusFailedToPublish)
		assert.Error(t, err)
		var notFoundErr outbox.ErrMessageNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, msgID, notFoundErr.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("status db error")
		mock.ExpectExec(query).
			WithArgs(outbox.StatusProcessed, pgxmock.AnyArg(), msgID).
			WillReturnError(dbErr)

		err := repo.UpdateStatus(ctx, msgID, outbox.StatusProcessed)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update outbox message status")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_IncrementAttempts(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}
	msgID := int64(17)

	query := `
		UPDATE sale_event_outbox
		SET attempts = attempts \+ 1, last_attempt_at = \$1
		WHERE id = \$2
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(pgxmock.AnyArg(), msgID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.IncrementAttempts(ctx, msgID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(pgxmock.AnyArg(), msgID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.IncrementAttempts(ctx, msgID)
		assert.Error(t, err)
		var notFoundErr outbox.ErrMessageNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("attempts db error")
		mock.ExpectExec(query).
			WithArgs(pgxmock.AnyArg(), msgID).
			WillReturnError(dbErr)

		err := repo.IncrementAttempts(ctx, msgID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to increment outbox message attempts")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_GetByTransactionID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}
	txnID := uuid.New()
	now := time.Now()

	query := `
		SELECT id, transaction_id, store_id, payload, status, attempts, created_at, last_attempt_at
		FROM sale_event_outbox
		WHERE transaction_id = \$1
	`
	columns := []string{"id", "transaction_id", "store_id", "payload", "status", "attempts", "created_at", "last_attempt_at"}

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows(columns).
			AddRow(int64(17), txnID, int64(42), json.RawMessage(`{"a":1}`), outbox.StatusProcessed, 1, now, &now)
		mock.ExpectQuery(query).WithArgs(txnID).WillReturnRows(rows)

		msg, err := repo.GetByTransactionID(ctx, txnID)
		assert.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, int64(17), msg.ID)
		assert.Equal(t, txnID, msg.TransactionID)
		assert.Equal(t, outbox.StatusProcessed, msg.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(txnID).WillReturnError(pgx.ErrNoRows)

		msg, err := repo.GetByTransactionID(ctx, txnID)
		assert.Error(t, err)
		assert.Nil(t, msg)
		var notFoundErr outbox.ErrMessageNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("lookup db error")
		mock.ExpectQuery(query).WithArgs(txnID).WillReturnError(dbErr)

		msg, err := repo.GetByTransactionID(ctx, txnID)
		assert.Error(t, err)
		assert.Nil(t, msg)
		assert.Contains(t, err.Error(), "failed to get outbox message by transaction")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_WithTx(t *testing.T) {
	logger := newTestLogger()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	originalRepo := &OutboxRepository{querier: mockPool, logger: logger}

	mockPool.ExpectBegin()
	pgxTx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	txRepo := originalRepo.WithTx(pgxTx)

	assert.NotNil(t, txRepo)
	assert.Equal(t, originalRepo.logger, txRepo.(*OutboxRepository).logger)
	assert.Equal(t, pgxTx, txRepo.(*OutboxRepository).querier, "Querier in new repo should be the transaction")

	assert.NoError(t, mockPool.ExpectationsWereMet())
}
