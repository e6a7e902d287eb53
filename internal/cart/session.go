// Package cart holds the shopper's cart session: distinct line items with
// bounded quantities and the applied coupon.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/furnshop/storefront/internal/pricing"
)

// LineItem is one distinct product in the cart
type LineItem struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Quantity  int
}

// Session is the cart owned by one shopper session. It is not safe for
// concurrent use; a session has a single actor.
type Session struct {
	items  []LineItem
	coupon pricing.Coupon
}

// NewSession returns an empty cart with no coupon
func NewSession() *Session {
	return &Session{coupon: pricing.NoCoupon{}}
}

// Items returns a copy of the line items in insertion order
func (s *Session) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct line items
func (s *Session) Len() int {
	return len(s.items)
}

func (s *Session) IsEmpty() bool {
	return len(s.items) == 0
}

// Item returns the line item with id
func (s *Session) Item(id string) (LineItem, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Add inserts item with quantity 1. Adding an id already present does
// nothing, including not bumping its quantity. Reports whether it inserted.
func (s *Session) Add(item LineItem) bool {
	if item.ID == "" || s.index(item.ID) >= 0 {
		return false
	}
	if item.UnitPrice.IsNegative() {
		item.UnitPrice = decimal.Zero
	}
	item.Quantity = pricing.MinQuantity
	s.items = append(s.items, item)
	return true
}

// Remove deletes the line item with id if present
func (s *Session) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// SetQuantity stores q clamped to [1,10]. Unknown ids are ignored.
func (s *Session) SetQuantity(id string, q int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Quantity = pricing.ClampQuantity(q)
	return true
}

// Clear empties the cart and drops the applied coupon
func (s *Session) Clear() {
	s.items = nil
	s.coupon = pricing.NoCoupon{}
}

// Coupon returns the applied coupon, NoCoupon when none
func (s *Session) Coupon() pricing.Coupon {
	if s.coupon == nil {
		return pricing.NoCoupon{}
	}
	return s.coupon
}

// ApplyCoupon replaces any previously applied coupon
func (s *Session) ApplyCoupon(c pricing.Coupon) {
	if c == nil {
		c = pricing.NoCoupon{}
	}
	s.coupon = c
}

func (s *Session) RemoveCoupon() {
	s.coupon = pricing.NoCoupon{}
}

// Reconcile drops line items whose id is rejected by keep and returns the
// dropped ids.
func (s *Session) Reconcile(keep func(id string) bool) []string {
	var dropped []string
	kept := s.items[:0]
	for _, it := range s.items {
		if keep(it.ID) {
			kept = append(kept, it)
			continue
		}
		dropped = append(dropped, it.ID)
	}
	s.items = kept
	return dropped
}

// Lines returns the pricing view of the cart
func (s *Session) Lines() []pricing.Line {
	lines := make([]pricing.Line, len(s.items))
	for i, it := range s.items {
		lines[i] = pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}
	return lines
}

// Price computes totals for the cart under profile
func (s *Session) Price(profile pricing.Profile) pricing.Result {
	return pricing.Compute(s.Lines(), s.Coupon(), profile)
}

func (s *Session) index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
