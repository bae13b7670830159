package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore backs the shared whole-response cache. Read failures are
// treated as misses so a cache outage never blocks an analysis.
type ValkeyStore struct {
	client valkey.Client
}

func NewValkeyStore(client valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (v *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool) {
	res := v.client.Do(ctx, v.client.B().Get().Key(key).Build())
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyStore] Get failed, treating as miss",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	value, err := res.AsBytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (v *ValkeyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	res := v.client.Do(ctx,
		v.client.B().Set().Key(key).Value(valkey.BinaryString(value)).
			Ex(ttl).Build())
	if err := res.Error(); err != nil {
		slog.Warn("[ValkeyStore] Set failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
