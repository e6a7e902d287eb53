package service

import (
	"strings"

	"github.com/furnshop/storefront/internal/domain"
)

// OrderFilter narrows an order listing. Zero values match everything.
type OrderFilter struct {
	// Status is an exact status, or "All"
	Status string
	// Query matches a case-insensitive substring of customer name or order id
	Query string
	// Email matches the customer email exactly
	Email string
}

// FilterOrders keeps the orders matching f, preserving their order
func FilterOrders(orders []*domain.Order, f OrderFilter) []*domain.Order {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	email := strings.TrimSpace(f.Email)

	out := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if f.Status != "" && f.Status != domain.OrderStatusAll && string(o.Status) != f.Status {
			continue
		}
		if email != "" && o.CustomerEmail != email {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(strings.ToLower(o.ID.String()), q) {
			continue
		}
		out = append(out, o)
	}
	return out
}
