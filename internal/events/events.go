// Package events announces order lifecycle changes to other services.
package events

import (
	"context"
	"time"

	"github.com/furnshop/storefront/internal/domain"
)

const (
	OrderCreatedRoutingKey       = "order.created"
	OrderStatusChangedRoutingKey = "order.status_changed"
)

// Publisher delivers order events. Delivery is best effort; callers log failures and carry on.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) error
	Close() error
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

type OrderCreated struct {
	EventType     string      `json:"eventType"`
	OrderID       string      `json:"orderId"`
	CustomerEmail string      `json:"customerEmail"`
	TotalAmount   string      `json:"totalAmount"`
	Items         []OrderItem `json:"items"`
	Timestamp     time.Time   `json:"timestamp"`
}

type OrderStatusChanged struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

func newOrderCreated(order *domain.Order, now time.Time) OrderCreated {
	ev := OrderCreated{
		EventType:     "OrderCreated",
		OrderID:       order.ID.String(),
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount.StringFixed(2),
		Items:         make([]OrderItem, 0, len(order.Items)),
		Timestamp:     now,
	}
	for _, it := range order.Items {
		ev.Items = append(ev.Items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.StringFixed(2),
			Quantity:  it.Quantity,
		})
	}
	return ev
}

func newOrderStatusChanged(order *domain.Order, from domain.OrderStatus, now time.Time) OrderStatusChanged {
	return OrderStatusChanged{
		EventType: "OrderStatusChanged",
		OrderID:   order.ID.String(),
		From:      string(from),
		To:        string(order.Status),
		Timestamp: now,
	}
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *domain.Order) error { return nil }

func (NoopPublisher) PublishStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
