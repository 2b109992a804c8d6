package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps visitor storage in Redis, one string key per entry.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "visitor:",
		ttl:    ttl,
	}
}

// NewRedisClient dials addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) key(scope, key string) string {
	return s.prefix + scope + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, scope, key, value string) error {
	return s.client.Set(ctx, s.key(scope, key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, scope, key string) error {
	return s.client.Del(ctx, s.key(scope, key)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
