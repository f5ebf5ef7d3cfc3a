package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/core/config"
	"github.com/dmitrymomot/qrdata/core/logger"
	"github.com/dmitrymomot/qrdata/core/server"
	"github.com/dmitrymomot/qrdata/pkg/ratelimiter"
)

func testConfig() Config {
	return Config{
		AppName:            "qrdata",
		AppEnv:             "development",
		Server:             server.DefaultConfig(),
		CORSAllowedOrigins: []string{"*"},
		MaxBodySize:        1 << 20,
		RateLimit: RateLimitConfig{
			Enabled:        true,
			Capacity:       2,
			RefillRate:     1,
			RefillInterval: time.Minute,
		},
	}
}

func TestRouter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg.RateLimit.bucket())
	require.NoError(t, err)

	h := newRouter(cfg, logger.Discard(), limiter, nil)

	req := func(method, target, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := req(http.MethodPost, "/api/qrcode", `{"text":"Hello QR!"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, req(http.MethodGet, "/api/qrcode?text=hi", "").Code)

	w = req(http.MethodGet, "/api/qrcode?text=hi", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Health checks are never rate limited.
	for range 3 {
		w = req(http.MethodGet, "/live", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALIVE", w.Body.String())
	}
	assert.Equal(t, "READY", req(http.MethodGet, "/ready", "").Body.String())
}

func TestRouter_WithoutRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit.Enabled = false
	h := newRouter(cfg, logger.Discard(), nil, nil)

	for range 5 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qrcode?text=hi", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	var cfg Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "qrdata", cfg.AppName)
	assert.True(t, cfg.production())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.MaxBodySize)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Minute, cfg.RateLimit.RefillInterval)
	assert.Empty(t, cfg.Redis.ConnectionURL)
	assert.Equal(t, 3, cfg.Redis.RetryAttempts)
}
