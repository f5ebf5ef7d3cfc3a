package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/core/router"
	"github.com/dmitrymomot/qrdata/middleware"
	"github.com/dmitrymomot/qrdata/pkg/ratelimiter"
)

func newLimiter(t *testing.T, capacity int) ratelimiter.RateLimiter {
	t.Helper()

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     1,
		RefillInterval: time.Minute,
	})
	require.NoError(t, err)
	return limiter
}

func limitedRouter(cfg middleware.RateLimitConfig) http.Handler {
	r := newRouter(
		middleware.ClientIP[*router.Context](),
		middleware.RateLimit[*router.Context](cfg),
	)
	r.Get("/", func(ctx *router.Context) handler.Response {
		return response.String("ok")
	})
	return r
}

func fromIP(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":5555"
	return req
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := limitedRouter(middleware.RateLimitConfig{Limiter: newLimiter(t, 2), SetHeaders: true})

	for i := range 2 {
		w := do(h, fromIP("192.0.2.1"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
		assert.Empty(t, w.Header().Get("Retry-After"))
	}

	w := do(h, fromIP("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Positive(t, retry)
	assert.LessOrEqual(t, retry, 60)

	var body struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "too_many_requests", body.Code)
	assert.InDelta(t, float64(retry), body.Details["retry_after"], 1)

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, do(h, fromIP("192.0.2.2")).Code)
}

func TestRateLimit_RetryAfterWithoutInfoHeaders(t *testing.T) {
	t.Parallel()

	h := limitedRouter(middleware.RateLimitConfig{Limiter: newLimiter(t, 1)})

	w := do(h, fromIP("192.0.2.9"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))

	w = do(h, fromIP("192.0.2.9"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_CustomKeyAndSkip(t *testing.T) {
	t.Parallel()

	h := limitedRouter(middleware.RateLimitConfig{
		Limiter: newLimiter(t, 1),
		KeyExtractor: func(ctx handler.Context) string {
			return ctx.Request().Header.Get("X-API-Key")
		},
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().Header.Get("X-Internal") == "1"
		},
	})

	req := func(key string) *http.Request {
		r := fromIP("192.0.2.3")
		r.Header.Set("X-API-Key", key)
		return r
	}

	assert.Equal(t, http.StatusOK, do(h, req("a")).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, req("a")).Code)
	assert.Equal(t, http.StatusOK, do(h, req("b")).Code)

	internal := req("a")
	internal.Header.Set("X-Internal", "1")
	assert.Equal(t, http.StatusOK, do(h, internal).Code)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func (brokenLimiter) AllowN(context.Context, string, int) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func TestRateLimit_LimiterFailure(t *testing.T) {
	t.Parallel()

	h := limitedRouter(middleware.RateLimitConfig{Limiter: brokenLimiter{}})

	w := do(h, fromIP("192.0.2.4"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), ratelimiter.ErrStoreUnavailable.Error())
}

func TestRateLimit_RequiresLimiter(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.RateLimit[*router.Context](middleware.RateLimitConfig{})
	})
}
