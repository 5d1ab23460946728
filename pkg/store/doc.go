// Package store provides a generic keyed [Store] with in-memory and Redis
// backends.
//
// The memory backend is the default and keeps values in a map under a
// read-write mutex. The Redis backend serializes values as JSON and is used
// when a Redis connection is configured, so edits survive restarts and are
// shared between replicas:
//
//	client, _ := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	s := store.NewRedis[templates.Template](client, nil, store.WithPrefix("templates"))
//
// [Seed] writes defaults without overwriting existing values.
package store
