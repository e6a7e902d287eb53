package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartSessionHeader     = "X-Cart-Session"
	cartSessionContextKey = "cart_session"
	maxSessionIDLength    = 64
)

// CartSessionMiddleware resolves the shopper's cart session id. A missing or
// malformed header gets a fresh id, echoed back so the client can keep it.
func CartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(CartSessionHeader))
		if !validSessionID(sessionID) {
			sessionID = uuid.NewString()
		}

		c.Set(cartSessionContextKey, sessionID)
		c.Header(CartSessionHeader, sessionID)
		c.Next()
	}
}

// GetCartSession returns the session id set by CartSessionMiddleware
func GetCartSession(c *gin.Context) string {
	return c.GetString(cartSessionContextKey)
}

func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
