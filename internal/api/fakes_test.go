package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/pkg/errors"
)

const testAPIKey = "test-operator-key"

type fakeOperators struct{}

func (fakeOperators) GetByAPIKey(_ context.Context, apiKey string) (*domain.Operator, error) {
	if apiKey != testAPIKey {
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	return &domain.Operator{ID: uuid.New(), Name: "store manager", IsActive: true}, nil
}

func (fakeOperators) GetByID(_ context.Context, id uuid.UUID) (*domain.Operator, error) {
	return nil, &errors.ErrNotFound{Resource: "operator", ID: id.String()}
}

func (fakeOperators) Create(context.Context, *domain.Operator) error { return nil }
func (fakeOperators) Update(context.Context, *domain.Operator) error { return nil }

type fakeProducts struct {
	mu       sync.Mutex
	products []*domain.Product
}

func (f *fakeProducts) add(name string, price float64) *domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &domain.Product{ID: uuid.New(), Name: name, Price: price, CreatedAt: time.Now()}
	f.products = append([]*domain.Product{p}, f.products...)
	return p
}

func (f *fakeProducts) List(context.Context) ([]*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Product(nil), f.products...), nil
}

func (f *fakeProducts) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	f.products = append([]*domain.Product{p}, f.products...)
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.products {
		if existing.ID == p.ID {
			f.products[i] = p
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "product", ID: p.ID.String()}
}

func (f *fakeProducts) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
	seq    int
	// createErr, when set, fails every Create
	createErr error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[uuid.UUID]*domain.Order)}
}

func (f *fakeOrders) Create(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	o.ID = uuid.New()
	o.Status = domain.OrderStatusPending
	o.CreatedAt = time.Unix(int64(f.seq), 0)
	o.UpdatedAt = o.CreatedAt
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) List(context.Context) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	delete(f.orders, id)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*domain.OrderEvent
}

func (f *fakeEvents) Create(_ context.Context, e *domain.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEvents) ListByOrderID(_ context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.OrderEvent, 0)
	for _, e := range f.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeIdempotencyKeys struct {
	mu   sync.Mutex
	keys map[string]*domain.IdempotencyKey
}

func (f *fakeIdempotencyKeys) Get(_ context.Context, key string) (*domain.IdempotencyKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k, ok := f.keys[key]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "idempotency_key", ID: key}
	}
	return k, nil
}

func (f *fakeIdempotencyKeys) Reserve(_ context.Context, key *domain.IdempotencyKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key.Key]; ok {
		return &errors.ErrValidation{Field: "Idempotency-Key", Message: "key already used"}
	}
	cp := *key
	cp.OrderID = uuid.Nil
	f.keys[key.Key] = &cp
	return nil
}

func (f *fakeIdempotencyKeys) Complete(_ context.Context, key string, orderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k, ok := f.keys[key]
	if !ok || !k.Pending() {
		return &errors.ErrNotFound{Resource: "idempotency_key", ID: key}
	}
	k.OrderID = orderID
	return nil
}

func (f *fakeIdempotencyKeys) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if k, ok := f.keys[key]; ok && k.Pending() {
		delete(f.keys, key)
	}
	return nil
}
