package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context, pattern string) error
	Close() error
}

// Key builds a tenant-prefixed cache key so cached entries can never be
// read across tenants and a whole tenant can be invalidated by pattern.
func Key(tenantID, resource, suffix string) string {
	if suffix != "" {
		return tenantID + ":" + resource + ":" + suffix
	}
	return tenantID + ":" + resource
}

// TenantPattern matches every cached entry of one resource for one tenant.
func TenantPattern(tenantID, resource string) string {
	return tenantID + ":" + resource + "*"
}
