package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/domain"
	apperrors "github.com/furnshop/storefront/pkg/errors"
)

func TestCatalogService_LineItemForNormalizesPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"regular", 129.99, "129.99"},
		{"negative", -5, "0"},
		{"nan", math.NaN(), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			p := &domain.Product{ID: uuid.New(), Name: "Desk", Price: tt.price, Image: "/img/desk.png"}
			d.products.On("GetByID", mock.Anything, p.ID).Return(p, nil)

			item, err := NewCatalogService(d.repos, zap.NewNop()).LineItemFor(context.Background(), p.ID.String())
			require.NoError(t, err)
			assert.Equal(t, p.ID.String(), item.ID)
			assert.Equal(t, "Desk", item.Name)
			assert.Equal(t, tt.want, item.UnitPrice.String())
			assert.Equal(t, 1, item.Quantity)
		})
	}
}

func TestCatalogService_Search(t *testing.T) {
	d := newTestDeps()
	d.products.On("List", mock.Anything).Return([]*domain.Product{
		{ID: uuid.New(), Name: "Walnut Desk"},
		{ID: uuid.New(), Name: "Oak Chair"},
		{ID: uuid.New(), Name: "Standing desk"},
	}, nil)

	got, err := NewCatalogService(d.repos, zap.NewNop()).Search(context.Background(), " DESK ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Walnut Desk", got[0].Name)
	assert.Equal(t, "Standing desk", got[1].Name)
}

func TestCatalogService_SearchMatchesCategory(t *testing.T) {
	d := newTestDeps()
	d.products.On("List", mock.Anything).Return([]*domain.Product{
		{ID: uuid.New(), Name: "Walnut Desk", Category: "Office"},
		{ID: uuid.New(), Name: "Linen Sofa", Category: "Living Room"},
	}, nil)

	got, err := NewCatalogService(d.repos, zap.NewNop()).Search(context.Background(), "living")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Linen Sofa", got[0].Name)
}

func TestCatalogService_ListFailureIsUnavailable(t *testing.T) {
	d := newTestDeps()
	d.products.On("List", mock.Anything).Return(nil, errors.New("dial tcp: refused"))

	_, err := NewCatalogService(d.repos, zap.NewNop()).List(context.Background())
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestCatalogService_CreateValidates(t *testing.T) {
	d := newTestDeps()
	svc := NewCatalogService(d.repos, zap.NewNop())

	_, err := svc.Create(context.Background(), ProductRequest{Price: 10})
	var verr *apperrors.ErrValidation
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	_, err = svc.Create(context.Background(), ProductRequest{Name: "Stool", Price: -1})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)

	d.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateAndUpdate(t *testing.T) {
	d := newTestDeps()
	svc := NewCatalogService(d.repos, zap.NewNop())

	d.products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Stool" && p.Category == "Dining" && p.Price == 45
	})).Return(nil)

	created, err := svc.Create(context.Background(), ProductRequest{Name: " Stool ", Category: "Dining", Price: 45})
	require.NoError(t, err)
	assert.Equal(t, "Stool", created.Name)

	existing := &domain.Product{ID: uuid.New(), Name: "Stool", Price: 45}
	d.products.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	d.products.On("Update", mock.Anything, existing).Return(nil)

	updated, err := svc.Update(context.Background(), existing.ID.String(), ProductRequest{Name: "Bar Stool", Price: 55})
	require.NoError(t, err)
	assert.Equal(t, "Bar Stool", updated.Name)
	assert.Equal(t, 55.0, updated.Price)
	d.products.AssertExpectations(t)
}

func TestCatalogService_Delete(t *testing.T) {
	d := newTestDeps()
	id := uuid.New()
	d.products.On("Delete", mock.Anything, id).Return(&apperrors.ErrNotFound{Resource: "product", ID: id.String()})

	svc := NewCatalogService(d.repos, zap.NewNop())
	assert.True(t, apperrors.IsNotFound(svc.Delete(context.Background(), id.String())))
	assert.True(t, apperrors.IsNotFound(svc.Delete(context.Background(), "x")))
}
