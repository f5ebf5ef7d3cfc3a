package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/pkg/clientip"
	"github.com/dmitrymomot/qrdata/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Skip func(ctx handler.Context) bool

	// Limiter is required.
	Limiter ratelimiter.RateLimiter

	// KeyExtractor defaults to the client IP.
	KeyExtractor func(ctx handler.Context) string

	// ErrorHandler renders denied requests. Defaults to a 429 HTTPError
	// with retry_after details.
	ErrorHandler func(ctx handler.Context, result *ratelimiter.Result) handler.Response

	// SetHeaders adds X-RateLimit-* headers to every response.
	SetHeaders bool
}

// RateLimit rejects requests once the limiter denies their key. Denied
// responses always carry Retry-After. A limiter failure fails the request
// with 503.
// Panics if no limiter is provided.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			if ip, ok := GetClientIP(ctx); ok {
				return ip
			}
			return clientip.GetIP(ctx.Request())
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, result *ratelimiter.Result) handler.Response {
			return response.Error(response.ErrTooManyRequests.WithDetails(map[string]any{
				"retry_after": retryAfterSeconds(result),
			}))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
			if err != nil {
				return response.Error(fmt.Errorf("%w: %w", response.ErrServiceUnavailable, err))
			}

			if !result.Allowed() {
				return withRateLimitHeaders(cfg.ErrorHandler(ctx, result), result, cfg.SetHeaders)
			}

			resp := next(ctx)
			if resp == nil || !cfg.SetHeaders {
				return resp
			}
			return withRateLimitHeaders(resp, result, true)
		}
	}
}

func retryAfterSeconds(result *ratelimiter.Result) int {
	// Round up so clients never retry before a token is back.
	d := result.RetryAfter()
	secs := int(d.Seconds())
	if d > 0 && float64(secs) < d.Seconds() {
		secs++
	}
	return max(1, secs)
}

func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result, info bool) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		if info {
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		}
		if !result.Allowed() {
			h.Set("Retry-After", strconv.Itoa(retryAfterSeconds(result)))
		}
		return resp(w, r)
	}
}
