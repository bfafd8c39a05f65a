package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV backs a Store with Redis so multiple dashboard instances share
// one admin session.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps an existing Redis client. Keys are namespaced under
// "resortadmin:session:".
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client, prefix: "resortadmin:session:"}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefix + k
	}
	return r.client.Del(ctx, prefixed...).Err()
}
