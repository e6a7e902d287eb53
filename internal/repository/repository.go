package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/furnshop/storefront/internal/domain"
)

// Repositories groups every store the services depend on
type Repositories struct {
	Operator       OperatorRepository
	Product        ProductRepository
	Order          OrderRepository
	OrderEvent     OrderEventRepository
	IdempotencyKey IdempotencyKeyRepository
}

// OperatorRepository stores admin operators
type OperatorRepository interface {
	// GetByAPIKey finds the active operator whose key hash matches apiKey
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Operator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error)
	Create(ctx context.Context, operator *domain.Operator) error
	Update(ctx context.Context, operator *domain.Operator) error
}

// ProductRepository is the catalog
type ProductRepository interface {
	// List returns every product, newest first
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository is the sole writer of persisted orders
type OrderRepository interface {
	// Create assigns id, status Pending and timestamps, then stores order with its items
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// List returns every order with items, newest first
	List(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatus sets status and returns the updated order
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderEventRepository stores the order audit trail
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// IdempotencyKeyRepository remembers checkout requests already served
type IdempotencyKeyRepository interface {
	Get(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	// Reserve stores key with no order yet. A key that already exists
	// yields ErrValidation, so only one request can hold it.
	Reserve(ctx context.Context, key *domain.IdempotencyKey) error
	// Complete attaches the order produced under a reserved key
	Complete(ctx context.Context, key string, orderID uuid.UUID) error
	// Release drops a reservation whose request failed
	Release(ctx context.Context, key string) error
}
