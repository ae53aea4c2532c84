package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a string key/value store with expiry. Get returns "" on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Nop never stores anything. It stands in when no cache is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, error) { return "", nil }

func (Nop) Set(context.Context, string, string, time.Duration) error { return nil }

func (Nop) Delete(context.Context, ...string) error { return nil }

// GetJSON decodes the cached value for key into dst. It reports false on a miss.
func GetJSON(ctx context.Context, c Cache, key string, dst any) (bool, error) {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s for cache: %w", key, err)
	}
	return c.Set(ctx, key, string(raw), ttl)
}
