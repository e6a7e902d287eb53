package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/config"
	"github.com/furnshop/storefront/internal/pricing"
	"github.com/furnshop/storefront/pkg/errors"
)

// Profiles are the two pricing flows the storefront shows
type Profiles struct {
	Preview pricing.Profile
	Summary pricing.Profile
}

// ProfilesFromConfig builds the cart-preview and checkout-summary profiles
func ProfilesFromConfig(cfg config.PricingConfig) Profiles {
	return Profiles{
		Preview: pricing.CartPreview(cfg.FreeShippingThreshold, cfg.PreviewShippingFlat),
		Summary: pricing.CheckoutSummary(cfg.CheckoutTaxRate, cfg.CheckoutShippingFlat),
	}
}

// DefaultProfiles uses the storefront's standard thresholds and rates
var DefaultProfiles = Profiles{
	Preview: pricing.DefaultCartPreview,
	Summary: pricing.DefaultCheckoutSummary,
}

// CartService applies one mutation per call to a stored cart session.
// A failed save leaves the previously stored session untouched.
type CartService struct {
	store    cart.Store
	catalog  *CatalogService
	coupons  pricing.CouponBook
	profiles Profiles
	logger   *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store cart.Store, catalog *CatalogService, profiles Profiles, logger *zap.Logger) *CartService {
	return &CartService{
		store:    store,
		catalog:  catalog,
		coupons:  pricing.DefaultCoupons,
		profiles: profiles,
		logger:   logger,
	}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*cart.Session, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to load cart session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.Unavailable("cart.load", err)
	}
	return session, nil
}

// AddProduct puts a catalog product in the cart with quantity 1.
// A product already in the cart is left as is.
func (s *CartService) AddProduct(ctx context.Context, sessionID, productID string) (*cart.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := session.Item(productID); ok {
		return session, nil
	}

	item, err := s.catalog.LineItemFor(ctx, productID)
	if err != nil {
		return nil, err
	}
	session.Add(item)

	return s.persist(ctx, sessionID, session)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, id string) (*cart.Session, error) {
	return s.mutate(ctx, sessionID, func(session *cart.Session) bool {
		return session.Remove(id)
	})
}

// SetQuantity clamps quantity to [1,10]; ids not in the cart are ignored
func (s *CartService) SetQuantity(ctx context.Context, sessionID, id string, quantity int) (*cart.Session, error) {
	return s.mutate(ctx, sessionID, func(session *cart.Session) bool {
		return session.SetQuantity(id, quantity)
	})
}

// Clear empties the cart and drops its coupon
func (s *CartService) Clear(ctx context.Context, sessionID string) (*cart.Session, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Failed to clear cart session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.Unavailable("cart.clear", err)
	}
	return cart.NewSession(), nil
}

// ApplyCoupon looks code up in the coupon book. Unknown codes are kept as
// an invalid coupon so the shopper sees the rejection; a blank code is a no-op.
func (s *CartService) ApplyCoupon(ctx context.Context, sessionID, code string) (*cart.Session, error) {
	coupon, ok := s.coupons.Lookup(code)
	return s.mutate(ctx, sessionID, func(session *cart.Session) bool {
		if !ok {
			return false
		}
		session.ApplyCoupon(coupon)
		return true
	})
}

func (s *CartService) RemoveCoupon(ctx context.Context, sessionID string) (*cart.Session, error) {
	return s.mutate(ctx, sessionID, func(session *cart.Session) bool {
		session.RemoveCoupon()
		return true
	})
}

// Reconcile drops cart lines whose products left the catalog
func (s *CartService) Reconcile(ctx context.Context, sessionID string) (*cart.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsEmpty() {
		return session, nil
	}

	ids, err := s.catalog.ProductIDs(ctx)
	if err != nil {
		return nil, err
	}

	dropped := session.Reconcile(func(id string) bool {
		_, ok := ids[id]
		return ok
	})
	if len(dropped) == 0 {
		return session, nil
	}

	s.logger.Info("Dropped cart lines for removed products",
		zap.String("session_id", sessionID),
		zap.Strings("product_ids", dropped),
	)
	return s.persist(ctx, sessionID, session)
}

// Preview prices the session with the cart-preview profile
func (s *CartService) Preview(session *cart.Session) pricing.Result {
	return session.Price(s.profiles.Preview)
}

// Summary prices the session with the checkout-summary profile
func (s *CartService) Summary(session *cart.Session) pricing.Result {
	return session.Price(s.profiles.Summary)
}

// Response renders the session with cart-preview pricing
func (s *CartService) Response(sessionID string, session *cart.Session) CartResponse {
	return CartResponse{
		SessionID: sessionID,
		Items:     NewCartItemResponses(session.Items()),
		ItemCount: session.Len(),
		Coupon:    NewCouponResponse(session.Coupon()),
		Pricing:   NewPricingResponse(s.Preview(session), fixed(s.profiles.Preview.FreeShippingThreshold)),
	}
}

// SummaryResponse renders checkout-summary pricing for the session
func (s *CartService) SummaryResponse(session *cart.Session) PricingResponse {
	return NewPricingResponse(s.Summary(session), "")
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*cart.Session) bool) (*cart.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !fn(session) {
		return session, nil
	}
	return s.persist(ctx, sessionID, session)
}

func (s *CartService) persist(ctx context.Context, sessionID string, session *cart.Session) (*cart.Session, error) {
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		s.logger.Error("Failed to save cart session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.Unavailable("cart.save", err)
	}
	return session, nil
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
