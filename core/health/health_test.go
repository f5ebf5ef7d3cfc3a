package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/qrdata/core/health"
	"github.com/dmitrymomot/qrdata/core/logger"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/core/router"
)

func newRouter(checks ...health.Check) http.Handler {
	r := router.New(router.WithErrorHandler(response.JSONErrorHandler[*router.Context]))
	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](logger.Discard(), checks...))
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	w := get(newRouter(), "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()

		w := get(newRouter(), "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "READY", w.Body.String())
	})

	t.Run("passing checks", func(t *testing.T) {
		t.Parallel()

		ok := func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		}

		w := get(newRouter(ok, nil, ok), "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()

		called := false
		fail := func(context.Context) error { return errors.New("redis down") }
		after := func(context.Context) error { called = true; return nil }

		w := get(newRouter(fail, after), "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"code":"service_unavailable","error":"Service Unavailable"}`, w.Body.String())
		assert.False(t, called, "checks stop at the first failure")
	})
}
