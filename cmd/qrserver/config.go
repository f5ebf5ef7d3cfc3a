package main

import (
	"time"

	"github.com/dmitrymomot/qrdata/core/server"
	"github.com/dmitrymomot/qrdata/integration/database/redis"
	"github.com/dmitrymomot/qrdata/pkg/ratelimiter"
)

// Config is the service configuration read from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"qrdata"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Server server.Config

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxBodySize        int64    `env:"MAX_BODY_SIZE" envDefault:"1048576"`

	RateLimit RateLimitConfig

	// Redis is only used when REDIS_URL is set.
	Redis redis.Config
}

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"60"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

func (c RateLimitConfig) bucket() ratelimiter.Config {
	return ratelimiter.Config{
		Capacity:       c.Capacity,
		RefillRate:     c.RefillRate,
		RefillInterval: c.RefillInterval,
	}
}

func (c Config) production() bool {
	return c.AppEnv == "production"
}
