// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] executes a set of named [Checks] concurrently and
// answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// asks for JSON with an Accept: application/json header or ?format=json:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
