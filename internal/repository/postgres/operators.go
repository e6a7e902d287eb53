package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/pkg/errors"
)

type operatorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(db *sql.DB, logger *zap.Logger) *operatorRepository {
	return &operatorRepository{
		db:     db,
		logger: logger,
	}
}

func (r *operatorRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Operator, error) {
	// bcrypt hashes are salted, so every active operator has to be checked in turn.
	query := `
		SELECT id, name, api_key_hash, is_active, created_at, updated_at
		FROM operators
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query operators", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var operator domain.Operator
		if err := scanOperator(rows, &operator); err != nil {
			r.logger.Warn("Skipping unreadable operator row", zap.Error(err))
			continue
		}

		if bcrypt.CompareHashAndPassword([]byte(operator.APIKeyHash), []byte(apiKey)) == nil {
			return &operator, nil
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate operators", zap.Error(err))
		return nil, err
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *operatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	query := `
		SELECT id, name, api_key_hash, is_active, created_at, updated_at
		FROM operators
		WHERE id = $1
	`

	var operator domain.Operator
	err := scanOperator(r.db.QueryRowContext(ctx, query, id), &operator)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "operator", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get operator by ID", zap.Error(err))
		return nil, err
	}

	return &operator, nil
}

func (r *operatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	query := `
		INSERT INTO operators (id, name, api_key_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()
	if operator.ID == uuid.Nil {
		operator.ID = uuid.New()
	}
	if operator.CreatedAt.IsZero() {
		operator.CreatedAt = now
	}
	if operator.UpdatedAt.IsZero() {
		operator.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		operator.ID,
		operator.Name,
		operator.APIKeyHash,
		operator.IsActive,
		operator.CreatedAt,
		operator.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create operator", zap.Error(err))
		return err
	}

	return nil
}

func (r *operatorRepository) Update(ctx context.Context, operator *domain.Operator) error {
	query := `
		UPDATE operators
		SET name = $2, api_key_hash = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`

	operator.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query,
		operator.ID,
		operator.Name,
		operator.APIKeyHash,
		operator.IsActive,
		operator.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update operator", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "operator", ID: operator.ID.String()}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOperator(row rowScanner, operator *domain.Operator) error {
	return row.Scan(
		&operator.ID,
		&operator.Name,
		&operator.APIKeyHash,
		&operator.IsActive,
		&operator.CreatedAt,
		&operator.UpdatedAt,
	)
}
