// Package health provides liveness and readiness handlers.
//
//	r.Get("/live", health.Liveness[*router.Context])
//	r.Get("/ready", health.Readiness[*router.Context](log, redis.Healthcheck(client)))
//
// Readiness returns response.ErrServiceUnavailable when a check fails, so the
// router error handler renders the 503.
package health
