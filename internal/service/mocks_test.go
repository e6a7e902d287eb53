package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/repository"
)

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderEventRepository implements repository.OrderEventRepository for testing
type MockOrderEventRepository struct {
	mock.Mock
}

func (m *MockOrderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOrderEventRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OrderEvent), args.Error(1)
}

// MockProductRepository implements repository.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher implements events.Publisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) error {
	args := m.Called(ctx, order, from)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// failingStore loads from a MemoryStore but refuses to save
type failingStore struct {
	*cart.MemoryStore
}

var errStoreDown = errors.New("redis: connection refused")

func (f failingStore) Save(context.Context, string, *cart.Session) error {
	return errStoreDown
}

type testDeps struct {
	orders   *MockOrderRepository
	events   *MockOrderEventRepository
	products *MockProductRepository
	pub      *MockPublisher
	repos    *repository.Repositories
}

func newTestDeps() *testDeps {
	d := &testDeps{
		orders:   new(MockOrderRepository),
		events:   new(MockOrderEventRepository),
		products: new(MockProductRepository),
		pub:      new(MockPublisher),
	}
	d.repos = &repository.Repositories{
		Order:      d.orders,
		OrderEvent: d.events,
		Product:    d.products,
	}
	return d
}

func (d *testDeps) orderService(strict bool) *OrderService {
	return NewOrderService(d.repos, d.pub, OrderOptions{
		Summary:           DefaultProfiles.Summary,
		StrictTransitions: strict,
	}, zap.NewNop())
}
