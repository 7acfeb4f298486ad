package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"userapp/internal/core/port"
)

type memoryRepository struct {
	cache *gocache.Cache
}

// NewMemoryRepository is the in-process stand-in for redis, used in tests and
// when no REDIS_ADDR is configured.
func NewMemoryRepository() port.CacheRepository {
	return &memoryRepository{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (c *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if value, found := c.cache.Get(key); found {
		return value.([]byte), nil
	}

	return nil, nil
}

func (c *memoryRepository) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *memoryRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}

	return nil
}

func (c *memoryRepository) Close() error {
	c.cache.Flush()
	return nil
}
