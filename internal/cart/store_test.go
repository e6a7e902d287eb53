package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnshop/storefront/internal/pricing"
)

func TestSessionJSON_RoundTrip(t *testing.T) {
	coupons := map[string]pricing.Coupon{
		"none":     pricing.NoCoupon{},
		"valid":    pricing.DefaultCoupons["SAVE10"],
		"freeship": pricing.DefaultCoupons["FREESHIP"],
		"invalid":  pricing.InvalidCoupon{Code: "ABC"},
	}

	for name, coupon := range coupons {
		t.Run(name, func(t *testing.T) {
			s := NewSession()
			s.Add(sofa())
			s.Add(chair())
			s.SetQuantity("p-chair", 4)
			s.ApplyCoupon(coupon)

			first, err := json.Marshal(s)
			require.NoError(t, err)

			restored := NewSession()
			require.NoError(t, json.Unmarshal(first, restored))

			second, err := json.Marshal(restored)
			require.NoError(t, err)

			assert.JSONEq(t, string(first), string(second))
			assert.Equal(t, coupon, restored.Coupon())
			assert.Equal(t, ids(s), ids(restored))
			got, _ := restored.Item("p-chair")
			assert.Equal(t, 4, got.Quantity)
		})
	}
}

func TestSessionJSON_Document(t *testing.T) {
	s := NewSession()
	s.Add(sofa())
	s.ApplyCoupon(pricing.InvalidCoupon{Code: "ABC"})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"lineItems": [{"id": "p-sofa", "name": "Linen Sofa", "unitPrice": "10", "image": "/uploads/sofa.jpg", "quantity": 1}],
		"appliedCoupon": {"code": "ABC", "discountPercent": 0, "freeShipping": false, "valid": false}
	}`, string(data))

	empty, err := json.Marshal(NewSession())
	require.NoError(t, err)
	assert.JSONEq(t, `{"lineItems": [], "appliedCoupon": null}`, string(empty))
}

func TestSessionJSON_NormalizesOnLoad(t *testing.T) {
	raw := `{"lineItems": [
		{"id": "a", "name": "A", "unitPrice": "5", "quantity": 40},
		{"id": "a", "name": "A again", "unitPrice": "6", "quantity": 2},
		{"id": "b", "name": "B", "unitPrice": "1", "quantity": 0}
	], "appliedCoupon": null}`

	s := NewSession()
	require.NoError(t, json.Unmarshal([]byte(raw), s))

	assert.Equal(t, []string{"a", "b"}, ids(s))
	a, _ := s.Item("a")
	assert.Equal(t, 10, a.Quantity)
	assert.Equal(t, "A", a.Name)
	b, _ := s.Item("b")
	assert.Equal(t, 1, b.Quantity)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("missing session loads empty", func(t *testing.T) {
		s, err := store.Load(ctx, "unknown")
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
		assert.Equal(t, pricing.NoCoupon{}, s.Coupon())
	})

	t.Run("state survives a reload", func(t *testing.T) {
		s := NewSession()
		s.Add(sofa())
		s.SetQuantity("p-sofa", 2)
		s.ApplyCoupon(pricing.DefaultCoupons["FREESHIP"])
		require.NoError(t, store.Save(ctx, "sess-1", s))

		// mutating after save does not leak into the store
		s.Remove("p-sofa")

		reloaded, err := store.Load(ctx, "sess-1")
		require.NoError(t, err)
		got, ok := reloaded.Item("p-sofa")
		require.True(t, ok)
		assert.Equal(t, 2, got.Quantity)
		assert.Equal(t, pricing.DefaultCoupons["FREESHIP"], reloaded.Coupon())
	})

	t.Run("delete forgets the session", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "sess-1"))
		s, err := store.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
	})
}

func TestRedisStore_Defaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	store := NewRedisStoreWithClient(client, "", 0)
	assert.Equal(t, DefaultKeyPrefix, store.keyPrefix)
	assert.Equal(t, DefaultTTL, store.ttl)
}

func TestRedisStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := NewRedisStoreWithClient(client, "test:", time.Minute)
	ctx := context.Background()

	_, err := store.Load(ctx, "sess-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load cart session")

	err = store.Save(ctx, "sess-1", NewSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save cart session")

	err = store.Delete(ctx, "sess-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete cart session")
}

// TestRedisStore_Integration requires a running Redis; it skips otherwise.
func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 500 * time.Millisecond})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	prefix := fmt.Sprintf("test:cart:%d:", time.Now().UnixNano())
	store := NewRedisStoreWithClient(client, prefix, time.Hour)

	t.Run("missing key loads empty", func(t *testing.T) {
		s, err := store.Load(ctx, "unknown")
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
		assert.Equal(t, pricing.NoCoupon{}, s.Coupon())
	})

	coupons := []pricing.Coupon{
		pricing.NoCoupon{},
		pricing.DefaultCoupons["SAVE10"],
		pricing.DefaultCoupons["FREESHIP"],
		pricing.InvalidCoupon{Code: "ABC"},
	}
	for i, coupon := range coupons {
		sessionID := fmt.Sprintf("sess-%d", i)

		s := NewSession()
		s.Add(sofa())
		s.Add(chair())
		s.SetQuantity("p-sofa", 3)
		s.ApplyCoupon(coupon)
		require.NoError(t, store.Save(ctx, sessionID, s))

		ttl, err := client.TTL(ctx, prefix+sessionID).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)

		reloaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		want, got := s.Items(), reloaded.Items()
		require.Len(t, got, len(want))
		for j := range want {
			assert.Equal(t, want[j].ID, got[j].ID)
			assert.Equal(t, want[j].Name, got[j].Name)
			assert.Equal(t, want[j].Quantity, got[j].Quantity)
			assert.True(t, want[j].UnitPrice.Equal(got[j].UnitPrice))
		}
		assert.Equal(t, coupon, reloaded.Coupon())

		require.NoError(t, store.Delete(ctx, sessionID))
		gone, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, gone.IsEmpty())
	}
}
