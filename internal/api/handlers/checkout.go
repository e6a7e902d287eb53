package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/api/middleware"
	"github.com/furnshop/storefront/internal/repository"
	"github.com/furnshop/storefront/internal/service"
)

// CheckoutResponse is returned for both new and replayed checkouts
type CheckoutResponse struct {
	Order    service.OrderResponse `json:"order"`
	Replayed bool                  `json:"replayed,omitempty"`
}

// HandleCheckout handles POST /v1/checkout. The cart is cleared only after
// the order is stored; a failed checkout leaves it intact.
func HandleCheckout(
	carts *service.CartService,
	orders *service.OrderService,
	repos *repository.Repositories,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionID := middleware.GetCartSession(c)

		if replayedID, ok := middleware.GetReplayedOrderID(c); ok {
			order, err := orders.Get(ctx, replayedID)
			if err != nil {
				respondError(c, logger, err, "load replayed order")
				return
			}
			c.JSON(http.StatusOK, CheckoutResponse{Order: service.NewOrderResponse(order), Replayed: true})
			return
		}

		var customer service.CustomerInfo
		if err := c.ShouldBindJSON(&customer); err != nil {
			respondBindError(c, err)
			return
		}

		session, err := carts.Get(ctx, sessionID)
		if err != nil {
			respondError(c, logger, err, "load cart")
			return
		}

		order, err := orders.CreateFromCart(ctx, session, customer)
		if err != nil {
			respondError(c, logger, err, "create order")
			return
		}

		if _, err := carts.Clear(ctx, sessionID); err != nil {
			// the order stands; the shopper can clear the cart again
			logger.Warn("Failed to clear cart after checkout",
				zap.String("session_id", sessionID),
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}

		if key := middleware.GetIdempotencyKey(c); key != "" {
			// an uncompleted key stays reserved, so retries get 409 rather than a second order
			if err := repos.IdempotencyKey.Complete(ctx, key, order.ID); err != nil {
				logger.Warn("Failed to complete idempotency key",
					zap.String("key", key),
					zap.String("order_id", order.ID.String()),
					zap.Error(err),
				)
			}
		}

		c.JSON(http.StatusCreated, CheckoutResponse{Order: service.NewOrderResponse(order)})
	}
}
