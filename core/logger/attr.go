package logger

import (
	"log/slog"
	"time"
)

// Helpers return an empty Attr for empty input, which slog drops, so callers
// can write log.Info("msg", logger.Error(err)) without nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// ID creates a generic identifier attribute with a custom key.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// RequestID creates an attribute for a request ID.
func RequestID(id string) slog.Attr {
	return stringAttr("request_id", id)
}

// Method creates an attribute for an HTTP method.
func Method(method string) slog.Attr {
	return stringAttr("method", method)
}

// Path creates an attribute for a URL path.
func Path(path string) slog.Attr {
	return stringAttr("path", path)
}

// Query creates an attribute for a raw URL query.
func Query(query string) slog.Attr {
	return stringAttr("query", query)
}

// RemoteAddr creates an attribute for the network address of the client.
func RemoteAddr(addr string) slog.Attr {
	return stringAttr("remote_addr", addr)
}

// UserAgent creates an attribute for a User-Agent header.
func UserAgent(ua string) slog.Attr {
	return stringAttr("user_agent", ua)
}

// StatusCode creates an attribute for an HTTP status code.
func StatusCode(code int) slog.Attr {
	return slog.Int("status", code)
}

// BytesOut creates an attribute for the response size.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Component creates an attribute naming the subsystem that logs.
func Component(name string) slog.Attr {
	return stringAttr("component", name)
}

// Event creates an attribute for an event name.
func Event(name string) slog.Attr {
	return stringAttr("event", name)
}

// Count creates an integer attribute with a custom key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates an arbitrary attribute.
func Key(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func stringAttr(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
