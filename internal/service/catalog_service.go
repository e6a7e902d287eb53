package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/pricing"
	"github.com/furnshop/storefront/internal/repository"
	"github.com/furnshop/storefront/pkg/errors"
)

// CatalogService reads and maintains the product catalog
type CatalogService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repository.Repositories, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repos:  repos,
		logger: logger,
	}
}

// List returns all products, newest first
func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repos.Product.List(ctx)
	if err != nil {
		return nil, errors.Unavailable("product.list", err)
	}
	return products, nil
}

// Search returns products whose name or category contains query, case-insensitively
func (s *CatalogService) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products, nil
	}

	matches := make([]*domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}

	product, err := s.repos.Product.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.Unavailable("product.get", err)
	}
	return product, nil
}

// LineItemFor snapshots a catalog product as a cart line
func (s *CatalogService) LineItemFor(ctx context.Context, productID string) (cart.LineItem, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return cart.LineItem{}, err
	}

	return cart.LineItem{
		ID:        product.ID.String(),
		Name:      product.Name,
		UnitPrice: pricing.FromFloat(product.Price),
		Image:     product.Image,
		Quantity:  pricing.MinQuantity,
	}, nil
}

// ProductIDs returns the set of ids currently in the catalog
func (s *CatalogService) ProductIDs(ctx context.Context) (map[string]struct{}, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(products))
	for _, p := range products {
		ids[p.ID.String()] = struct{}{}
	}
	return ids, nil
}

func (s *CatalogService) Create(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product := &domain.Product{}
	applyProductRequest(product, req)

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, errors.Unavailable("product.create", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, req ProductRequest) (*domain.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductRequest(product, req)

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, errors.Unavailable("product.update", err)
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return &errors.ErrNotFound{Resource: "product", ID: id}
	}

	if err := s.repos.Product.Delete(ctx, productID); err != nil {
		return errors.Unavailable("product.delete", err)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func applyProductRequest(p *domain.Product, req ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Category = strings.TrimSpace(req.Category)
	p.Price = req.Price
	p.MRP = req.MRP
	p.Stock = req.Stock
	p.Rating = req.Rating
	p.Reviews = req.Reviews
	p.Image = strings.TrimSpace(req.Image)
}
