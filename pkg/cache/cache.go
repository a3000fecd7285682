package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations interface.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
	Close() error
}

// GetTyped retrieves a key and unmarshals it into T.
func GetTyped[T any](ctx context.Context, c Service, key string) (T, bool, error) {
	var obj T
	var raw string
	if err := c.Get(ctx, key, &raw); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return obj, false, nil
		}
		return obj, false, err
	}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return obj, false, err
	}
	return obj, true, nil
}
