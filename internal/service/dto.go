package service

import (
	"time"

	"github.com/furnshop/storefront/internal/cart"
	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/pricing"
)

// CustomerInfo is the checkout form
type CustomerInfo struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// AddItemRequest adds a catalog product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// SetQuantityRequest sets a line's quantity. Out-of-range values are clamped, not rejected.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ProductRequest is the admin catalog payload
type ProductRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Category string  `json:"category" validate:"max=100"`
	Price    float64 `json:"price" validate:"gte=0"`
	MRP      float64 `json:"mrp" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
	Reviews  int     `json:"reviews" validate:"gte=0"`
	Image    string  `json:"image" validate:"max=2048"`
}

type CartItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// CouponResponse reports the applied coupon; Valid is false for unknown codes
type CouponResponse struct {
	Code            string `json:"code"`
	Valid           bool   `json:"valid"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	FreeShipping    bool   `json:"free_shipping,omitempty"`
}

type ProgressResponse struct {
	Threshold string `json:"threshold"`
	Remaining string `json:"remaining"`
	Percent   int    `json:"percent"`
}

type PricingResponse struct {
	Profile      string            `json:"profile"`
	Subtotal     string            `json:"subtotal"`
	Discount     string            `json:"discount"`
	Tax          string            `json:"tax"`
	Shipping     string            `json:"shipping"`
	Total        string            `json:"total"`
	FreeShipping *ProgressResponse `json:"free_shipping,omitempty"`
}

type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Coupon    *CouponResponse    `json:"coupon"`
	Pricing   PricingResponse    `json:"pricing"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   string              `json:"total_amount"`
	Status        domain.OrderStatus  `json:"status"`
	// Closed is true once no further status change is possible
	Closed    bool      `json:"closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderEventResponse struct {
	EventType string                 `json:"event_type"`
	EventData map[string]interface{} `json:"event_data"`
	CreatedAt time.Time              `json:"created_at"`
}

type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	MRP       float64   `json:"mrp"`
	Stock     int       `json:"stock"`
	Rating    float64   `json:"rating"`
	Reviews   int       `json:"reviews"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPricingResponse renders a pricing result with two-decimal money strings
func NewPricingResponse(r pricing.Result, threshold string) PricingResponse {
	resp := PricingResponse{
		Profile:  r.Profile,
		Subtotal: r.Subtotal.StringFixed(2),
		Discount: r.Discount.StringFixed(2),
		Tax:      r.Tax.StringFixed(2),
		Shipping: r.Shipping.StringFixed(2),
		Total:    r.Total.StringFixed(2),
	}
	if r.Progress != nil {
		resp.FreeShipping = &ProgressResponse{
			Threshold: threshold,
			Remaining: r.Progress.Remaining.StringFixed(2),
			Percent:   r.Progress.Percent,
		}
	}
	return resp
}

// NewCouponResponse returns nil when no coupon is applied
func NewCouponResponse(c pricing.Coupon) *CouponResponse {
	switch v := c.(type) {
	case pricing.ValidCoupon:
		return &CouponResponse{
			Code:            v.Code,
			Valid:           true,
			DiscountPercent: v.DiscountPercent,
			FreeShipping:    v.FreeShipping,
		}
	case pricing.InvalidCoupon:
		return &CouponResponse{Code: v.Code}
	default:
		return nil
	}
}

func NewCartItemResponses(items []cart.LineItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CartItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Image:     it.Image,
			Quantity:  it.Quantity,
			LineTotal: it.UnitPrice.Mul(decimalFromInt(it.Quantity)).StringFixed(2),
		})
	}
	return out
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
		TotalAmount:   o.TotalAmount.StringFixed(2),
		Status:        o.Status,
		Closed:        o.Status.IsTerminal(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.StringFixed(2),
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	return resp
}

func NewOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

func NewOrderEventResponses(events []*domain.OrderEvent) []OrderEventResponse {
	out := make([]OrderEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, OrderEventResponse{
			EventType: e.EventType,
			EventData: e.EventData,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		MRP:       p.MRP,
		Stock:     p.Stock,
		Rating:    p.Rating,
		Reviews:   p.Reviews,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}

func NewProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
