package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/api/handlers"
	"github.com/furnshop/storefront/internal/api/middleware"
	"github.com/furnshop/storefront/internal/config"
	"github.com/furnshop/storefront/internal/repository"
	"github.com/furnshop/storefront/internal/service"
)

// Services are the application services the handlers call
type Services struct {
	Cart    *service.CartService
	Orders  *service.OrderService
	Catalog *service.CatalogService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, svc Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(svc.Catalog, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(svc.Catalog, logger))

		// Shopper routes, keyed by the X-Cart-Session header
		shopper := v1.Group("")
		shopper.Use(middleware.CartSessionMiddleware())
		{
			shopper.GET("/cart", handlers.HandleGetCart(svc.Cart, logger))
			shopper.DELETE("/cart", handlers.HandleClearCart(svc.Cart, logger))
			shopper.POST("/cart/items", handlers.HandleAddCartItem(svc.Cart, logger))
			shopper.PUT("/cart/items/:id", handlers.HandleUpdateCartItem(svc.Cart, logger))
			shopper.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(svc.Cart, logger))
			shopper.POST("/cart/coupon", handlers.HandleApplyCoupon(svc.Cart, logger))
			shopper.DELETE("/cart/coupon", handlers.HandleRemoveCoupon(svc.Cart, logger))
			shopper.GET("/cart/summary", handlers.HandleCartSummary(svc.Cart, logger))

			shopper.POST("/checkout",
				middleware.IdempotencyMiddleware(repos, logger),
				handlers.HandleCheckout(svc.Cart, svc.Orders, repos, logger),
			)
		}

		v1.GET("/orders", handlers.HandleListCustomerOrders(svc.Orders, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(svc.Orders, logger))

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(svc.Orders, logger))
			adminRoutes.PUT("/orders/:id/status", handlers.HandleUpdateOrderStatus(svc.Orders, logger))
			adminRoutes.DELETE("/orders/:id", handlers.HandleDeleteOrder(svc.Orders, logger))
			adminRoutes.GET("/orders/:id/events", handlers.HandleOrderEvents(svc.Orders, logger))

			adminRoutes.POST("/products", handlers.HandleCreateProduct(svc.Catalog, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(svc.Catalog, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(svc.Catalog, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
