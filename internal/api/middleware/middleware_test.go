package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCartSessionMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"missing header gets a new id", "", false},
		{"well formed id is kept", "3f0c2b1a-7d6e-4f5a-9b8c-1d2e3f4a5b6c", true},
		{"id with spaces is replaced", "a b", false},
		{"overlong id is replaced", strings.Repeat("x", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			var seen string
			router.GET("/", CartSessionMiddleware(), func(c *gin.Context) {
				seen = GetCartSession(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(CartSessionHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(CartSessionHeader))
			if tt.keep {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
		})
	}
}

func TestExtractAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"bearer token", map[string]string{"Authorization": "Bearer abc"}, "abc"},
		{"lowercase scheme", map[string]string{"Authorization": "bearer abc"}, "abc"},
		{"x-api-key header", map[string]string{"X-API-Key": " abc "}, "abc"},
		{"non-bearer authorization falls back", map[string]string{"Authorization": "Basic zzz", "X-API-Key": "abc"}, "abc"},
		{"nothing", map[string]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractAPIKey(c))
		})
	}
}

func TestHashRequest_DependsOnSessionAndBody(t *testing.T) {
	base := hashRequest("s1", []byte(`{"a":1}`))
	assert.Equal(t, base, hashRequest("s1", []byte(`{"a":1}`)))
	assert.NotEqual(t, base, hashRequest("s2", []byte(`{"a":1}`)))
	assert.NotEqual(t, base, hashRequest("s1", []byte(`{"a":2}`)))
}
