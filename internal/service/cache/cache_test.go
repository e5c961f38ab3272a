package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2026, 1, 2, 9, 15, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.SetBytes(ctx, "signals:ALL:70:ALL:20", []byte(`{"a":1}`), 30*time.Second))
	require.NoError(t, c.SetBytes(ctx, "forever", []byte("x"), 0))

	b, ok, err := c.GetBytes(ctx, "signals:ALL:70:ALL:20")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(b))

	now = now.Add(31 * time.Second)
	_, ok, _ = c.GetBytes(ctx, "signals:ALL:70:ALL:20")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	_, ok, _ = c.GetBytes(ctx, "forever")
	assert.True(t, ok)

	_, ok, _ = c.GetBytes(ctx, "missing")
	assert.False(t, ok)
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	r := NewRedisCache(RedisConfig{Addr: "127.0.0.1:1"})
	defer r.Close()
	assert.Equal(t, "smartmoney:signals:x", r.key("signals:x"))
}

func TestRedisCacheUnreachable(t *testing.T) {
	r := NewRedisCache(RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	defer r.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, ok, err := r.GetBytes(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, r.Ping(ctx))
}

var (
	_ BytesCache = (*TTLCache)(nil)
	_ BytesCache = (*RedisCache)(nil)
)
