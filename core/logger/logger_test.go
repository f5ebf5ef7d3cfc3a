package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/core/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_Production(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithProduction("qrdata"), logger.WithOutput(&buf))

	log.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug is below production level")

	log.Info("started", logger.Component("server"))
	m := decode(t, &buf)
	assert.Equal(t, "started", m["msg"])
	assert.Equal(t, "qrdata", m["service"])
	assert.Equal(t, "production", m["env"])
	assert.Equal(t, "server", m["component"])
}

func TestNew_Development(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("qrdata"), logger.WithOutput(&buf))

	log.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "service=qrdata")
}

func TestNew_LevelOverride(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("qrdata"),
		logger.WithLevel(slog.LevelWarn),
		logger.WithOutput(&buf),
	)

	log.Info("dropped")
	assert.Zero(t, buf.Len())
	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

type ctxKey struct{}

func TestNew_ContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With(logger.Component("api")).InfoContext(ctx, "handled")
	m := decode(t, &buf)
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "api", m["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "no id")
	m = decode(t, &buf)
	assert.NotContains(t, m, "request_id")
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Component("").Equal(slog.Attr{}))
	assert.True(t, logger.ID("id", nil).Equal(slog.Attr{}))

	err := errors.New("boom")
	assert.Equal(t, "error", logger.Error(err).Key)
	assert.Equal(t, "status", logger.StatusCode(200).Key)
	assert.Equal(t, int64(42), logger.BytesOut(42).Value.Int64())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "query", logger.Query("a=1").Key)
	assert.Equal(t, "remote_addr", logger.RemoteAddr("127.0.0.1:1").Key)

	g := logger.Group("http", logger.Method("GET"), logger.Path("/"))
	assert.Len(t, g.Value.Group(), 2)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}
