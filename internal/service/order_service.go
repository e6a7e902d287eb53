package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/events"
	"github.com/furnshop/storefront/internal/pricing"
	"github.com/furnshop/storefront/internal/repository"
	"github.com/furnshop/storefront/pkg/errors"
)

// OrderOptions tunes the order lifecycle
type OrderOptions struct {
	// Summary prices the cart at checkout
	Summary pricing.Profile
	// StrictTransitions rejects status changes outside the lifecycle graph.
	// When false any known status may follow any other.
	StrictTransitions bool
}

// OrderService owns order creation and status changes
type OrderService struct {
	repos     *repository.Repositories
	publisher events.Publisher
	opts      OrderOptions
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, publisher events.Publisher, opts OrderOptions, logger *zap.Logger) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{
		repos:     repos,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// CreateFromCart places a Pending order from a snapshot of the cart lines.
// The cart itself is left alone; callers clear it once this succeeds.
func (s *OrderService) CreateFromCart(ctx context.Context, session *cart.Session, customer CustomerInfo) (*domain.Order, error) {
	if session == nil || session.IsEmpty() {
		return nil, &errors.ErrEmptyCart{}
	}

	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	if err := validateStruct(customer); err != nil {
		return nil, err
	}

	lineItems := session.Items()
	order := &domain.Order{
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Items:         make([]domain.OrderItem, 0, len(lineItems)),
		TotalAmount:   session.Price(s.opts.Summary).Total.Round(2),
		Status:        domain.OrderStatusPending,
	}
	for _, it := range lineItems {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.UnitPrice,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, errors.Unavailable("order.create", err)
	}

	s.recordEvent(ctx, order.ID, domain.OrderEventCreated, map[string]interface{}{
		"status":       string(order.Status),
		"total_amount": order.TotalAmount.StringFixed(2),
		"item_count":   len(order.Items),
	})
	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("Failed to publish order created", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

// SetStatus moves an order to the status named by raw and returns the updated order
func (s *OrderService) SetStatus(ctx context.Context, id string, raw string) (*domain.Order, error) {
	next, ok := domain.ParseOrderStatus(raw)
	if !ok {
		return nil, &errors.ErrInvalidStatus{Value: raw}
	}

	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	}

	var from domain.OrderStatus
	if s.opts.StrictTransitions {
		current, err := s.repos.Order.GetByID(ctx, orderID)
		if err != nil {
			return nil, errors.Unavailable("order.get", err)
		}
		if !current.Status.CanTransitionTo(next) {
			return nil, &errors.ErrInvalidStateTransition{
				From: string(current.Status),
				To:   string(next),
			}
		}
		from = current.Status
	}

	order, err := s.repos.Order.UpdateStatus(ctx, orderID, next)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.Error("Failed to update order status", zap.String("order_id", id), zap.Error(err))
		}
		return nil, errors.Unavailable("order.update_status", err)
	}

	data := map[string]interface{}{"to": string(next)}
	if from != "" {
		data["from"] = string(from)
	}
	s.recordEvent(ctx, orderID, domain.OrderEventStatusChanged, data)
	if err := s.publisher.PublishStatusChanged(ctx, order, from); err != nil {
		s.logger.Warn("Failed to publish status change", zap.String("order_id", id), zap.Error(err))
	}

	return order, nil
}

// Delete removes an order. Deleting an unknown order is not an error.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	if err := s.repos.Order.Delete(ctx, orderID); err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		s.logger.Error("Failed to delete order", zap.String("order_id", id), zap.Error(err))
		return errors.Unavailable("order.delete", err)
	}

	s.recordEvent(ctx, orderID, domain.OrderEventDeleted, map[string]interface{}{})
	return nil
}

// List returns orders newest first, narrowed by f
func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]*domain.Order, error) {
	if f.Status != "" && f.Status != domain.OrderStatusAll {
		if _, ok := domain.ParseOrderStatus(f.Status); !ok {
			return nil, &errors.ErrInvalidStatus{Value: f.Status}
		}
	}

	orders, err := s.repos.Order.List(ctx)
	if err != nil {
		return nil, errors.Unavailable("order.list", err)
	}
	return FilterOrders(orders, f), nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.Unavailable("order.get", err)
	}
	return order, nil
}

// Events returns the audit trail of an order, oldest first
func (s *OrderService) Events(ctx context.Context, id string) ([]*domain.OrderEvent, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	}

	evts, err := s.repos.OrderEvent.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.Unavailable("order_event.list", err)
	}
	return evts, nil
}

// recordEvent writes an audit row. Failures are logged, never returned.
func (s *OrderService) recordEvent(ctx context.Context, orderID uuid.UUID, eventType string, data map[string]interface{}) {
	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: eventType,
		EventData: data,
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.String("order_id", orderID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
