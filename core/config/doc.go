// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is loaded on first use with
// github.com/joho/godotenv, then variables are parsed into the target struct
// with github.com/caarlos0/env/v11. Each type is parsed once and cached.
//
//	type Config struct {
//		Addr     string        `env:"SERVER_ADDR" envDefault:":8080"`
//		Timeout  time.Duration `env:"TIMEOUT" envDefault:"5s"`
//		RedisURL string        `env:"REDIS_URL"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Nested structs are supported through `envPrefix`. Parse failures wrap
// ErrParsingConfig.
package config
