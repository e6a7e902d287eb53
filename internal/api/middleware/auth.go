package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/repository"
	"github.com/furnshop/storefront/pkg/errors"
)

const operatorContextKey = "operator"

// AuthMiddleware admits requests carrying an active operator's API key,
// either as "Authorization: Bearer <key>" or "X-API-Key: <key>".
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := extractAPIKey(c)
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		operator, err := repos.Operator.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			if errors.IsUnauthorized(err) {
				logger.Warn("Rejected admin request", zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
				return
			}
			logger.Error("Failed to authenticate operator", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication unavailable"})
			return
		}

		c.Set(operatorContextKey, operator)
		c.Next()
	}
}

// GetOperatorFromContext returns the operator set by AuthMiddleware
func GetOperatorFromContext(c *gin.Context) (*domain.Operator, bool) {
	v, ok := c.Get(operatorContextKey)
	if !ok {
		return nil, false
	}
	operator, ok := v.(*domain.Operator)
	return operator, ok
}

func extractAPIKey(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		const prefix = "Bearer "
		if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
			return strings.TrimSpace(auth[len(prefix):])
		}
	}
	return strings.TrimSpace(c.GetHeader("X-API-Key"))
}
