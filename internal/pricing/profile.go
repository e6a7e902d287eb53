package pricing

import "github.com/shopspring/decimal"

// ShippingPolicy decides when the flat shipping fee is charged
type ShippingPolicy int

const (
	// ShipBelowThreshold charges the flat fee unless the subtotal is zero,
	// reaches the free-shipping threshold, or a coupon waives it.
	ShipBelowThreshold ShippingPolicy = iota
	// ShipWhenNonEmpty charges the flat fee whenever the cart has a line.
	ShipWhenNonEmpty
)

const (
	ProfileCartPreview     = "cart_preview"
	ProfileCheckoutSummary = "checkout_summary"
)

// Profile holds the fixed inputs of one pricing flow
type Profile struct {
	Name                  string
	Shipping              ShippingPolicy
	FreeShippingThreshold decimal.Decimal
	ShippingFlat          decimal.Decimal
	TaxRate               decimal.Decimal
	HonorCoupons          bool
}

// CartPreview is the running cart profile: coupons apply, shipping is
// waived at the threshold, no tax.
func CartPreview(threshold, flat decimal.Decimal) Profile {
	return Profile{
		Name:                  ProfileCartPreview,
		Shipping:              ShipBelowThreshold,
		FreeShippingThreshold: threshold,
		ShippingFlat:          flat,
		TaxRate:               decimal.Zero,
		HonorCoupons:          true,
	}
}

// CheckoutSummary is the final order summary profile: flat tax on the
// subtotal and flat shipping for any non-empty cart.
func CheckoutSummary(taxRate, flat decimal.Decimal) Profile {
	return Profile{
		Name:         ProfileCheckoutSummary,
		Shipping:     ShipWhenNonEmpty,
		ShippingFlat: flat,
		TaxRate:      taxRate,
	}
}

var (
	DefaultCartPreview     = CartPreview(decimal.NewFromInt(750), decimal.NewFromInt(29))
	DefaultCheckoutSummary = CheckoutSummary(decimal.NewFromFloat(0.10), decimal.NewFromInt(25))
)
