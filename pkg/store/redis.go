package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a store backed by Redis string keys.
// Values are serialized with the configured Marshaler (JSON by default).
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	prefix    string
}

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
}

// WithPrefix namespaces keys as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// NewRedis creates a Redis-backed store. The client lifecycle belongs to the
// caller (see pkg/redis.Shutdown). A nil Marshaler selects JSON.
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := &redisOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	return &Redis[V]{client: client, marshaler: m, prefix: o.prefix}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, 0).Err()
}

func (r *Redis[V]) Add(ctx context.Context, key string, value V) (bool, error) {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return false, err
	}
	return r.client.SetNX(ctx, r.key(key), data, 0).Result()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; the client is shared.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Store[any] = (*Redis[any])(nil)
