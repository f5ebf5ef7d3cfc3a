package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/logger"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/core/router"
	"github.com/dmitrymomot/qrdata/middleware"
)

func newRouter(mws ...handler.Middleware[*router.Context]) router.Router[*router.Context] {
	return router.New[*router.Context](
		router.WithErrorHandler[*router.Context](response.JSONErrorHandler[*router.Context]),
		router.WithMiddleware[*router.Context](mws...),
	)
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	r := newRouter(middleware.RequestID[*router.Context]())
	r.Get("/", func(ctx *router.Context) handler.Response {
		seen, _ = middleware.GetRequestID(ctx)
		return response.String("ok")
	})

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	header := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, header)
	assert.Equal(t, seen, header)
	_, err := uuid.Parse(header)
	assert.NoError(t, err)

	other := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, header, other.Header().Get("X-Request-ID"))
}

func TestRequestID_ClientValue(t *testing.T) {
	t.Parallel()

	handle := func(ctx *router.Context) handler.Response { return response.String("ok") }

	t.Run("ignored by default", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.RequestID[*router.Context]())
		r.Get("/", handle)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-id")
		assert.NotEqual(t, "client-id", do(r, req).Header().Get("X-Request-ID"))
	})

	t.Run("kept with UseExisting", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
			UseExisting: true,
			HeaderName:  "X-Trace",
		}))
		r.Get("/", handle)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "client-id")
		assert.Equal(t, "client-id", do(r, req).Header().Get("X-Trace"))
	})
}

func TestRequestID_OnErrorResponses(t *testing.T) {
	t.Parallel()

	r := newRouter(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		Generator: func() string { return "fixed" },
	}))
	r.Get("/fail", func(ctx *router.Context) handler.Response {
		return response.Error(response.ErrBadRequest)
	})

	w := do(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "fixed", w.Header().Get("X-Request-ID"))

	w = do(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fixed", w.Header().Get("X-Request-ID"))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	_, ok := middleware.RequestIDExtractor(context.Background())
	assert.False(t, ok)

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	r := newRouter(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		Generator: func() string { return "req-123" },
	}))
	r.Get("/", func(ctx *router.Context) handler.Response {
		log.InfoContext(ctx, "handled")
		return response.String("ok")
	})

	do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)

	attr, ok := middleware.RequestIDExtractor(context.WithValue(context.Background(), struct{}{}, "x"))
	assert.False(t, ok)
	assert.Equal(t, slog.Attr{}, attr)
}
