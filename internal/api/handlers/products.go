package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/service"
)

// HandleListProducts handles GET /v1/products?q=
func HandleListProducts(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, logger, err, "list products")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": service.NewProductResponses(products),
			"count":    len(products),
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "get product")
			return
		}

		c.JSON(http.StatusOK, service.NewProductResponse(product))
	}
}
