// Package pricing turns cart lines and an applied coupon into totals.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

var hundred = decimal.NewFromInt(100)

// Line is the pricing view of a cart line item
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Progress is shopper feedback toward free shipping. It never affects totals.
type Progress struct {
	Remaining decimal.Decimal
	Percent   int
}

// Result holds derived totals. Total = max(0, Subtotal-Discount) + Tax + Shipping.
type Result struct {
	Profile  string
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	// Progress is nil for profiles without a free-shipping threshold
	Progress *Progress
}

// ClampQuantity bounds q to [MinQuantity, MaxQuantity]
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// FromFloat converts a catalog price, treating NaN, infinities and
// negatives as zero.
func FromFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Subtotal sums unit price times quantity over lines
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		price := l.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(ClampQuantity(l.Quantity)))))
	}
	return sum
}

// Compute prices lines under profile. It never fails; a nil coupon is
// treated as NoCoupon.
func Compute(lines []Line, coupon Coupon, profile Profile) Result {
	subtotal := Subtotal(lines)

	var discountPercent int
	var freeShipping bool
	if vc, ok := coupon.(ValidCoupon); ok && profile.HonorCoupons {
		discountPercent = vc.percent()
		freeShipping = vc.FreeShipping
	}

	discount := decimal.Zero
	if discountPercent > 0 {
		discount = subtotal.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
	}

	shipping := decimal.Zero
	switch profile.Shipping {
	case ShipWhenNonEmpty:
		if len(lines) > 0 {
			shipping = profile.ShippingFlat
		}
	default:
		qualifies := freeShipping ||
			(profile.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(profile.FreeShippingThreshold))
		if !subtotal.IsZero() && !qualifies {
			shipping = profile.ShippingFlat
		}
	}

	tax := decimal.Zero
	if len(lines) > 0 && profile.TaxRate.IsPositive() {
		tax = subtotal.Mul(profile.TaxRate)
	}

	total := decimal.Max(decimal.Zero, subtotal.Sub(discount)).Add(tax).Add(shipping)

	result := Result{
		Profile:  profile.Name,
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}
	if profile.Shipping == ShipBelowThreshold && profile.FreeShippingThreshold.IsPositive() {
		p := FreeShippingProgress(subtotal, profile.FreeShippingThreshold)
		result.Progress = &p
	}
	return result
}

// FreeShippingProgress reports how far subtotal is from threshold
func FreeShippingProgress(subtotal, threshold decimal.Decimal) Progress {
	if !threshold.IsPositive() {
		return Progress{Remaining: decimal.Zero, Percent: 100}
	}
	remaining := decimal.Max(decimal.Zero, threshold.Sub(subtotal))
	percent := subtotal.Div(threshold).Mul(hundred).Round(0).IntPart()
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return Progress{Remaining: remaining, Percent: int(percent)}
}
