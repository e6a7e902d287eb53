package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/pkg/errors"
)

// respondError maps a service error onto its HTTP status
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	var (
		notFound   *errors.ErrNotFound
		validation *errors.ErrValidation
		transition *errors.ErrInvalidStateTransition
	)

	switch {
	case errors.IsEmptyCart(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case stderrors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"field":   validation.Field,
			"details": validation.Message,
		})
	case errors.IsInvalidStatus(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   err.Error(),
			"allowed": domain.OrderStatuses,
		})
	case stderrors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"from":  transition.From,
			"to":    transition.To,
		})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Resource + " not found"})
	case errors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.IsUnavailable(err):
		logger.Error("Failed to "+action, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		logger.Error("Failed to "+action, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}
