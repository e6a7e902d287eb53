package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/furnshop/storefront/internal/pricing"
)

type document struct {
	LineItems     []lineItemDocument `json:"lineItems"`
	AppliedCoupon *couponDocument    `json:"appliedCoupon"`
}

type lineItemDocument struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

type couponDocument struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
	FreeShipping    bool   `json:"freeShipping"`
	Valid           bool   `json:"valid"`
}

// MarshalJSON encodes the session as its persisted mirror document
func (s *Session) MarshalJSON() ([]byte, error) {
	doc := document{LineItems: make([]lineItemDocument, 0, len(s.items))}
	for _, it := range s.items {
		doc.LineItems = append(doc.LineItems, lineItemDocument{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}

	switch c := s.Coupon().(type) {
	case pricing.ValidCoupon:
		doc.AppliedCoupon = &couponDocument{
			Code:            c.Code,
			DiscountPercent: c.DiscountPercent,
			FreeShipping:    c.FreeShipping,
			Valid:           true,
		}
	case pricing.InvalidCoupon:
		doc.AppliedCoupon = &couponDocument{Code: c.Code}
	}

	return json.Marshal(doc)
}

// UnmarshalJSON restores a session, re-applying dedup and quantity bounds
func (s *Session) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode cart session: %w", err)
	}

	*s = *NewSession()
	for _, it := range doc.LineItems {
		if !s.Add(LineItem{ID: it.ID, Name: it.Name, UnitPrice: it.UnitPrice, Image: it.Image}) {
			continue
		}
		s.SetQuantity(it.ID, it.Quantity)
	}

	if c := doc.AppliedCoupon; c != nil {
		if c.Valid {
			s.coupon = pricing.ValidCoupon{
				Code:            c.Code,
				DiscountPercent: c.DiscountPercent,
				FreeShipping:    c.FreeShipping,
			}
		} else {
			s.coupon = pricing.InvalidCoupon{Code: c.Code}
		}
	}
	return nil
}
