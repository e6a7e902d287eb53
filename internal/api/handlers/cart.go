package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/api/middleware"
	"github.com/furnshop/storefront/internal/service"
)

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.GetCartSession(c)

		session, err := carts.Reconcile(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err, "load cart")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		sessionID := middleware.GetCartSession(c)
		session, err := carts.AddProduct(c.Request.Context(), sessionID, req.ProductID)
		if err != nil {
			respondError(c, logger, err, "add cart item")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleUpdateCartItem handles PUT /v1/cart/items/:id
func HandleUpdateCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SetQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		sessionID := middleware.GetCartSession(c)
		session, err := carts.SetQuantity(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity)
		if err != nil {
			respondError(c, logger, err, "update cart item")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:id
func HandleRemoveCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.GetCartSession(c)
		session, err := carts.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "remove cart item")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.GetCartSession(c)
		session, err := carts.Clear(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err, "clear cart")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleApplyCoupon handles POST /v1/cart/coupon
func HandleApplyCoupon(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ApplyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		sessionID := middleware.GetCartSession(c)
		session, err := carts.ApplyCoupon(c.Request.Context(), sessionID, req.Code)
		if err != nil {
			respondError(c, logger, err, "apply coupon")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleRemoveCoupon handles DELETE /v1/cart/coupon
func HandleRemoveCoupon(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.GetCartSession(c)
		session, err := carts.RemoveCoupon(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err, "remove coupon")
			return
		}

		c.JSON(http.StatusOK, carts.Response(sessionID, session))
	}
}

// HandleCartSummary handles GET /v1/cart/summary
func HandleCartSummary(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.GetCartSession(c)
		session, err := carts.Get(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err, "load cart")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"items":      service.NewCartItemResponses(session.Items()),
			"pricing":    carts.SummaryResponse(session),
		})
	}
}
