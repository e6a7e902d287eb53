package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouponBook_Lookup(t *testing.T) {
	t.Run("known codes are normalized", func(t *testing.T) {
		c, ok := DefaultCoupons.Lookup("  save10 ")
		assert.True(t, ok)
		assert.Equal(t, ValidCoupon{Code: "SAVE10", DiscountPercent: 10}, c)

		c, ok = DefaultCoupons.Lookup("FreeShip")
		assert.True(t, ok)
		assert.Equal(t, ValidCoupon{Code: "FREESHIP", FreeShipping: true}, c)
	})

	t.Run("unknown code is applied but invalid", func(t *testing.T) {
		c, ok := DefaultCoupons.Lookup("abc")
		assert.True(t, ok)
		assert.Equal(t, InvalidCoupon{Code: "ABC"}, c)
	})

	t.Run("blank submission is a no-op", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\t\n"} {
			c, ok := DefaultCoupons.Lookup(raw)
			assert.False(t, ok)
			assert.Nil(t, c)
		}
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(NoCoupon{}))
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, "SAVE10", CodeOf(DefaultCoupons["SAVE10"]))
	assert.Equal(t, "XYZ", CodeOf(InvalidCoupon{Code: "XYZ"}))
}
