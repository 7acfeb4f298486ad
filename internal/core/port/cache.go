package port

import (
	"context"
	"time"
)

// CacheRepository backs read-side caching of expensive aggregations. Writes
// to the user collection invalidate by prefix.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}
