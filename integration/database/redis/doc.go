// Package redis connects to Redis with retry and exposes a healthcheck.
//
// The client is used as shared rate limiter state when several service
// instances run behind a load balancer.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 10 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ready := health.Readiness[*router.Context](log, redis.Healthcheck(client))
//
// Both redis:// and rediss:// URLs are accepted. ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady and ErrHealthcheckFailed
// can be matched with errors.Is.
package redis
