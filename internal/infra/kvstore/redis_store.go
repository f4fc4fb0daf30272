// Package kvstore contains the implementations of the shared expiring key-value store.
package kvstore

import (
	"context"
	"strings"
	"time"

	"tracker/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisStore implements service.KeyValueStore on a Redis server.
type redisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient) service.KeyValueStore {
	return &redisStore{client: client}
}

func (s *redisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to set key in %q", keyNamespace(key))
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrKeyNotFound
		}

		return nil, errors.Wrapf(err, "failed to get key in %q", keyNamespace(key))
	}

	return value, nil
}

// Delete relies on DEL returning the number of removed keys, which Redis serializes per key.
func (s *redisStore) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to delete key in %q", keyNamespace(key))
	}

	return removed > 0, nil
}

func (s *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check key in %q", keyNamespace(key))
	}

	return count > 0, nil
}

// keyNamespace returns the prefix before the first colon. Keys embed bearer tokens
// and challenge handles, so only the namespace may appear in error text.
func keyNamespace(key string) string {
	namespace, _, found := strings.Cut(key, ":")
	if !found {
		return "<unnamespaced>"
	}

	return namespace
}
