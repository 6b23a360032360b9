package cache

import (
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *PagesCache {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	return NewPagesCache(&redis.Options{Addr: addr}, ttl)
}

func TestPagesCache(t *testing.T) {
	c := newTestCache(t, time.Minute)
	c.Clear()
	defer c.Clear()

	require.Nil(t, c.Get("/", 1))

	c.Set("/", 1, []byte("body"))
	assert.Equal(t, []byte("body"), c.Get("/", 1))

	// Pages cache independently per page number.
	assert.Nil(t, c.Get("/", 2))

	c.Clear()
	assert.Nil(t, c.Get("/", 1))
}

func TestPagesCacheExpiry(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)
	defer c.Clear()

	c.Set("/", 1, []byte("stale"))
	assert.Equal(t, []byte("stale"), c.Get("/", 1))

	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, c.Get("/", 1))
}
