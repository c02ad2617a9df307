package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with per-key expiration. A miss is
// reported through the bool, not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
