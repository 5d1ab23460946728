// Package redis opens go-redis clients for the template store.
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	app := duesflow.New(
//	    duesflow.WithHealthChecks(duesflow.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	app.Run(addr, duesflow.ShutdownHook(redis.Shutdown(client)))
//
// Open pings the server and retries failed attempts, so a returned client is
// known to be reachable.
package redis
