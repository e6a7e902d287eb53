package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/api/middleware"
	"github.com/furnshop/storefront/internal/service"
)

// HandleListOrders handles GET /v1/admin/orders?status=&q=
func HandleListOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := service.OrderFilter{
			Status: c.Query("status"),
			Query:  c.Query("q"),
		}

		list, err := orders.List(c.Request.Context(), filter)
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

// HandleUpdateOrderStatus handles PUT /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		order, err := orders.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, logger, err, "update order status")
			return
		}

		if operator, ok := middleware.GetOperatorFromContext(c); ok {
			logger.Info("Order status changed",
				zap.String("order_id", order.ID.String()),
				zap.String("status", string(order.Status)),
				zap.String("operator", operator.Name),
			)
		}

		c.JSON(http.StatusOK, service.NewOrderResponse(order))
	}
}

// HandleDeleteOrder handles DELETE /v1/admin/orders/:id
func HandleDeleteOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err, "delete order")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleOrderEvents handles GET /v1/admin/orders/:id/events
func HandleOrderEvents(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		evts, err := orders.Events(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "list order events")
			return
		}

		c.JSON(http.StatusOK, gin.H{"events": service.NewOrderEventResponses(evts)})
	}
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		product, err := catalog.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "create product")
			return
		}

		c.JSON(http.StatusCreated, service.NewProductResponse(product))
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id
func HandleUpdateProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		product, err := catalog.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, logger, err, "update product")
			return
		}

		c.JSON(http.StatusOK, service.NewProductResponse(product))
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err, "delete product")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
