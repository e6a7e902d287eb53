package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operator is a store operator allowed into the admin API
type Operator struct {
	ID         uuid.UUID
	Name       string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Product is a catalog entry
type Product struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Price     float64
	MRP       float64
	Stock     int
	Rating    float64
	Reviews   int
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is a placed storefront order
type Order struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerEmail string
	Items         []OrderItem
	TotalAmount   decimal.Decimal
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is the snapshot of a cart line taken at checkout
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Name      string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

// IdempotencyKey stores idempotency information for checkout. OrderID is
// uuid.Nil while the request that reserved the key is still running.
type IdempotencyKey struct {
	Key         string
	SessionID   string
	OrderID     uuid.UUID
	RequestHash string
	CreatedAt   time.Time
}

// Pending reports whether the key is reserved but has no order yet
func (k *IdempotencyKey) Pending() bool {
	return k.OrderID == uuid.Nil
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}

const (
	OrderEventCreated       = "order_created"
	OrderEventStatusChanged = "status_change"
	OrderEventDeleted       = "order_deleted"
)
