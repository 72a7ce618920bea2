package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMirror keeps snapshots as plain string values, one per key, with no
// expiry.
type RedisMirror struct {
	client *redis.Client
	prefix string
}

// NewRedisClient connects using a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisMirror(client *redis.Client, prefix string) *RedisMirror {
	return &RedisMirror{client: client, prefix: prefix}
}

func (m *RedisMirror) key(key string) string {
	return m.prefix + key
}

func (m *RedisMirror) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := m.client.Get(ctx, m.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := decode(data, dest); err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return true, nil
}

func (m *RedisMirror) Save(ctx context.Context, key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if err := m.client.Set(ctx, m.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (m *RedisMirror) Clear(ctx context.Context, key string) error {
	if err := m.client.Del(ctx, m.key(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (m *RedisMirror) Close() error {
	return m.client.Close()
}
