package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with per-key expiration. The session usecase
// keeps short-lived provider call status snapshots here so repeated status
// polls do not hammer the Ultravox API.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
