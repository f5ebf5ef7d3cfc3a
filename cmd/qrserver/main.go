// qrserver serves the QR code API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/qrdata/api"
	"github.com/dmitrymomot/qrdata/core/config"
	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/health"
	"github.com/dmitrymomot/qrdata/core/logger"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/core/router"
	"github.com/dmitrymomot/qrdata/core/server"
	"github.com/dmitrymomot/qrdata/integration/database/redis"
	"github.com/dmitrymomot/qrdata/middleware"
	"github.com/dmitrymomot/qrdata/pkg/ratelimiter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	g, ctx := errgroup.WithContext(ctx)

	var checks []health.Check
	var limiter ratelimiter.RateLimiter
	if cfg.RateLimit.Enabled {
		store, check, err := newStore(ctx, g, cfg, log)
		if err != nil {
			return err
		}
		checks = append(checks, check)

		limiter, err = ratelimiter.NewBucket(store, cfg.RateLimit.bucket())
		if err != nil {
			return err
		}
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	g.Go(srv.Run(ctx, newRouter(cfg, log, limiter, checks)))

	log.Info("qrserver starting",
		slog.String("addr", cfg.Server.Addr),
		slog.Bool("rate_limit", cfg.RateLimit.Enabled),
		slog.Bool("redis", cfg.Redis.ConnectionURL != ""),
	)

	return g.Wait()
}

func newLogger(cfg Config) *slog.Logger {
	mode := logger.WithDevelopment(cfg.AppName)
	if cfg.production() {
		mode = logger.WithProduction(cfg.AppName)
	}
	return logger.New(
		mode,
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)
}

// newStore picks Redis when configured, otherwise an in-process store whose
// cleanup runs in g.
func newStore(ctx context.Context, g *errgroup.Group, cfg Config, log *slog.Logger) (ratelimiter.Store, health.Check, error) {
	if cfg.Redis.ConnectionURL == "" {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
		g.Go(store.Run(ctx))
		return store, store.Healthcheck, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	g.Go(func() error {
		<-ctx.Done()
		return client.Close()
	})

	store, err := ratelimiter.NewRedisStore(client, ratelimiter.WithRedisKeyPrefix(cfg.AppName+":ratelimit:"))
	if err != nil {
		return nil, nil, err
	}
	return store, redis.Healthcheck(client), nil
}

func newRouter(cfg Config, log *slog.Logger, limiter ratelimiter.RateLimiter, checks []health.Check) http.Handler {
	isHealthCheck := func(ctx handler.Context) bool {
		p := ctx.Request().URL.Path
		return p == "/live" || p == "/ready"
	}

	r := router.New[*router.Context](
		router.WithErrorHandler[*router.Context](response.JSONErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](log),
	)

	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.ClientIP[*router.Context](),
		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{Logger: log, Skip: isHealthCheck}),
		middleware.CORSWithConfig[*router.Context](middleware.CORSConfig{
			AllowOrigins:  cfg.CORSAllowedOrigins,
			ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		}),
	)
	if limiter != nil {
		r.Use(middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
			Limiter:    limiter,
			Skip:       isHealthCheck,
			SetHeaders: true,
		}))
	}

	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](log, checks...))

	api.Register(r, api.New(
		api.WithLogger(log),
		api.WithMaxBodySize(cfg.MaxBodySize),
	))

	return r
}
