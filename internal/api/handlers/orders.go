package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/service"
)

// HandleListCustomerOrders handles GET /v1/orders?email=
func HandleListCustomerOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.Query("email"))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		list, err := orders.List(c.Request.Context(), service.OrderFilter{Email: email})
		if err != nil {
			respondError(c, logger, err, "list orders")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": service.NewOrderResponses(list),
			"count":  len(list),
		})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "get order")
			return
		}

		c.JSON(http.StatusOK, service.NewOrderResponse(order))
	}
}
