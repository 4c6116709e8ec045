// internal/cache/store.go
package cache

import (
	"context"
	"time"
)

// Store is a generic key/value cache with expiry. Implementations must
// return (nil, nil) on a miss; infrastructure errors are surfaced so
// callers can log and degrade, never fail.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
