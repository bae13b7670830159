// Package cache provides the key-value stores backing the analysis caches:
// a process-local TTL map for tests and the short-lived per-field cache, and
// a Valkey-backed store for the shared whole-response cache.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract the orchestrator depends on. Writes are
// idempotent; a miss is (nil, false), never an error the caller must handle.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
