// Package redis implements ports.SessionRepository on a Redis server, for
// deployments where several client processes share one session.
package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// KV is the subset of Redis the session repository needs.
type KV interface {
	// MGet returns one value per key; ok[i] is false when keys[i] is absent.
	MGet(ctx context.Context, keys ...string) (values []string, ok []bool, err error)
	// SetAll writes every pair in one transaction.
	SetAll(ctx context.Context, pairs map[string]string) error
}

// RedisKV implements KV with go-redis.
type RedisKV struct {
	c *redis.Client
}

// NewClient connects to addr. The connection is lazy; use Ping to check it.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisKV(c *redis.Client) *RedisKV { return &RedisKV{c: c} }

func (r *RedisKV) MGet(ctx context.Context, keys ...string) ([]string, []bool, error) {
	raw, err := r.c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}
	values := make([]string, len(keys))
	ok := make([]bool, len(keys))
	for i, v := range raw {
		if s, isStr := v.(string); isStr {
			values[i] = s
			ok[i] = true
		}
	}
	return values, ok, nil
}

func (r *RedisKV) SetAll(ctx context.Context, pairs map[string]string) error {
	_, err := r.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for k, v := range pairs {
			p.Set(ctx, k, v, 0)
		}
		return nil
	})
	return err
}

// Ping checks the connection.
func (r *RedisKV) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisKV) Close() error {
	return r.c.Close()
}
