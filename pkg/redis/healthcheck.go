package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Healthcheck is the "redis" readiness check: the template store is ready
// only while PING succeeds. A nil client is never ready.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	if client == nil {
		return func(context.Context) error { return ErrHealthcheckFailed }
	}
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
