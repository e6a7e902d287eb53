package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/pkg/errors"
)

const uniqueViolation = "23505"

type idempotencyKeyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIdempotencyKeyRepository creates a new idempotency key repository
func NewIdempotencyKeyRepository(db *sql.DB, logger *zap.Logger) *idempotencyKeyRepository {
	return &idempotencyKeyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *idempotencyKeyRepository) Get(ctx context.Context, key string) (*domain.IdempotencyKey, error) {
	query := `
		SELECT key, session_id, order_id, request_hash, created_at
		FROM idempotency_keys
		WHERE key = $1
	`

	var (
		k       domain.IdempotencyKey
		orderID uuid.NullUUID
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&k.Key,
		&k.SessionID,
		&orderID,
		&k.RequestHash,
		&k.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "idempotency_key", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to get idempotency key", zap.Error(err))
		return nil, err
	}
	if orderID.Valid {
		k.OrderID = orderID.UUID
	}

	return &k, nil
}

// Reserve inserts key without an order. The primary key makes concurrent
// reservations of the same key fail with a unique violation.
func (r *idempotencyKeyRepository) Reserve(ctx context.Context, key *domain.IdempotencyKey) error {
	query := `
		INSERT INTO idempotency_keys (key, session_id, order_id, request_hash, created_at)
		VALUES ($1, $2, NULL, $3, $4)
	`

	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}
	key.OrderID = uuid.Nil

	_, err := r.db.ExecContext(ctx, query,
		key.Key,
		key.SessionID,
		key.RequestHash,
		key.CreatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return &errors.ErrValidation{Field: "Idempotency-Key", Message: "key already used"}
	}
	if err != nil {
		r.logger.Error("Failed to reserve idempotency key", zap.Error(err))
		return err
	}

	return nil
}

func (r *idempotencyKeyRepository) Complete(ctx context.Context, key string, orderID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE idempotency_keys SET order_id = $2 WHERE key = $1 AND order_id IS NULL`,
		key, orderID,
	)
	if err != nil {
		r.logger.Error("Failed to complete idempotency key", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "idempotency_key", ID: key}
	}

	return nil
}

func (r *idempotencyKeyRepository) Release(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM idempotency_keys WHERE key = $1 AND order_id IS NULL`,
		key,
	)
	if err != nil {
		r.logger.Error("Failed to release idempotency key", zap.Error(err))
		return err
	}

	return nil
}
