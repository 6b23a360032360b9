package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// PagesCache stores rendered feed pages in redis for a fixed TTL. It is a
// read-through cache keyed by request path and page number: writes never
// invalidate it, so readers may see data up to TTL stale.
type PagesCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewPagesCache(options *redis.Options, ttl time.Duration) *PagesCache {
	return &PagesCache{
		redisClient: redis.NewClient(options),
		ttl:         ttl,
	}
}

// Get returns the cached body for the page, or nil on a miss. Redis errors
// count as misses so an unavailable cache degrades to uncached reads.
func (c *PagesCache) Get(path string, pageNumber int) []byte {
	body, err := c.redisClient.Get(context.Background(), c.getRedisKey(path, pageNumber)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Errorf("Error reading page cache: %s", err)
		}
		return nil
	}
	return body
}

func (c *PagesCache) Set(path string, pageNumber int, body []byte) {
	err := c.redisClient.Set(context.Background(), c.getRedisKey(path, pageNumber), body, c.ttl).Err()
	if err != nil {
		log.Errorf("Error writing page cache: %s", err)
	}
}

// Clear drops every cached page.
func (c *PagesCache) Clear() {
	ctx := context.Background()
	iter := c.redisClient.Scan(ctx, 0, "page__*", 0).Iterator()
	for iter.Next(ctx) {
		c.redisClient.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Errorf("Error clearing page cache: %s", err)
	}
}

func (c *PagesCache) getRedisKey(path string, pageNumber int) string {
	return fmt.Sprintf("page__%s__%d", path, pageNumber)
}
