package pricing

import "strings"

// Coupon is the applied coupon state of a cart. It is always one of
// NoCoupon, ValidCoupon or InvalidCoupon.
type Coupon interface {
	isCoupon()
}

// NoCoupon means nothing is applied
type NoCoupon struct{}

// ValidCoupon is a recognized code with its terms
type ValidCoupon struct {
	Code            string
	DiscountPercent int
	FreeShipping    bool
}

// InvalidCoupon is a code that was applied but is not recognized.
// It grants nothing but stays visible to the shopper.
type InvalidCoupon struct {
	Code string
}

func (NoCoupon) isCoupon()      {}
func (ValidCoupon) isCoupon()   {}
func (InvalidCoupon) isCoupon() {}

// CodeOf returns the code of an applied coupon, or "" for NoCoupon
func CodeOf(c Coupon) string {
	switch v := c.(type) {
	case ValidCoupon:
		return v.Code
	case InvalidCoupon:
		return v.Code
	default:
		return ""
	}
}

// percent returns the discount percent clamped to [0,100]
func (c ValidCoupon) percent() int {
	switch {
	case c.DiscountPercent < 0:
		return 0
	case c.DiscountPercent > 100:
		return 100
	default:
		return c.DiscountPercent
	}
}

// CouponBook maps normalized codes to their terms
type CouponBook map[string]ValidCoupon

// DefaultCoupons is the storefront coupon table
var DefaultCoupons = CouponBook{
	"SAVE10":   {Code: "SAVE10", DiscountPercent: 10},
	"FREESHIP": {Code: "FREESHIP", FreeShipping: true},
}

// NormalizeCode trims and uppercases a submitted code
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Lookup resolves a submitted code. The second return is false when the
// submission is blank and the applied coupon must stay as it is.
func (b CouponBook) Lookup(raw string) (Coupon, bool) {
	code := NormalizeCode(raw)
	if code == "" {
		return nil, false
	}
	if c, ok := b[code]; ok {
		return c, true
	}
	return InvalidCoupon{Code: code}, true
}
