package ports

import (
	"context"
	"time"
)

// Cache is the shared process-wide TTL store used by both resolvers.
type Cache interface {
	Get(ctx context.Context, key string) (any, bool)
	Set(ctx context.Context, key string, value any)
	SetTTL(ctx context.Context, key string, value any, ttl time.Duration)
	Len() int
	ClearExpired(ctx context.Context) int
}
