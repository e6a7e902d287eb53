package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/internal/repository"
	"github.com/furnshop/storefront/pkg/errors"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	// MaxRequestBody bounds the checkout body read for hashing
	MaxRequestBody = 64 << 10

	idempotencyKeyContextKey    = "idempotency_key"
	idempotencyReplayContextKey = "idempotency_replayed_order_id"
)

// IdempotencyMiddleware reserves the Idempotency-Key header before the handler
// runs, so two requests with one key never both create an order.
//
// A key already completed with the same session and body marks the request as
// a replay. A key reused with a different request gets 422, and a key whose
// first request is still running gets 409. The reservation is released when
// the handler fails so the client can retry.
func IdempotencyMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBody)

		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		record := &domain.IdempotencyKey{
			Key:         key,
			SessionID:   GetCartSession(c),
			RequestHash: hashRequest(GetCartSession(c), body),
		}

		err = repos.IdempotencyKey.Reserve(ctx, record)
		switch {
		case err == nil:
		case errors.IsValidation(err):
			existing, err := repos.IdempotencyKey.Get(ctx, key)
			if err != nil {
				if errors.IsNotFound(err) {
					// released between our insert and lookup
					c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "idempotency key busy, retry the request"})
					return
				}
				logger.Error("Failed to look up idempotency key", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
				return
			}
			if existing.RequestHash != record.RequestHash {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
					"error": "idempotency key already used with a different request",
				})
				return
			}
			if existing.Pending() {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "a request with this idempotency key is still in progress",
				})
				return
			}
			c.Set(idempotencyReplayContextKey, existing.OrderID.String())
			c.Next()
			return
		default:
			logger.Error("Failed to reserve idempotency key", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		c.Set(idempotencyKeyContextKey, key)
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := repos.IdempotencyKey.Release(ctx, key); err != nil {
				logger.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

// GetIdempotencyKey returns the key this request reserved, or "" when the
// request carries no key or is a replay.
func GetIdempotencyKey(c *gin.Context) string {
	return c.GetString(idempotencyKeyContextKey)
}

// GetReplayedOrderID returns the order an earlier request with the same key produced
func GetReplayedOrderID(c *gin.Context) (string, bool) {
	id := c.GetString(idempotencyReplayContextKey)
	return id, id != ""
}

func hashRequest(sessionID string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(sessionID))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
