package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/logger"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// LogLevel for successful requests. Defaults to info; 4xx log at warn
	// and 5xx at error.
	LogLevel slog.Level

	// LogRequest also logs a record when the request starts.
	LogRequest bool

	// SlowRequestThreshold logs slower requests at warn. Defaults to 5s.
	SlowRequestThreshold time.Duration

	// Component defaults to "http".
	Component string
}

// Logging logs one record per completed request.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

type statusCoder interface {
	StatusCode() int
}

// LoggingWithConfig logs method, path, status, size and duration of every
// request. When a response returns an error without writing, the status is
// taken from the error, because the router error handler writes it later.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()

			if cfg.LogRequest {
				cfg.Logger.LogAttrs(req.Context(), slog.LevelDebug, "HTTP request started",
					logger.Component(cfg.Component),
					logger.Event("request"),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.Query(req.URL.RawQuery),
					logger.RemoteAddr(req.RemoteAddr),
				)
			}

			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &statusRecorder{ResponseWriter: w}
				err := resp(wrapped, r)
				duration := time.Since(start)

				status := wrapped.status
				switch {
				case status != 0:
				case err != nil:
					status = http.StatusInternalServerError
					var sc statusCoder
					if errors.As(err, &sc) {
						status = sc.StatusCode()
					}
				default:
					status = http.StatusOK
				}

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("response"),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.Query(req.URL.RawQuery),
					logger.StatusCode(status),
					logger.BytesOut(wrapped.size),
					logger.Duration(duration),
					logger.UserAgent(req.UserAgent()),
				}

				if ip, ok := GetClientIP(ctx); ok {
					attrs = append(attrs, slog.String("client_ip", ip))
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
					attrs = append(attrs, logger.Error(err))
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

// statusRecorder captures the status and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int64
}

func (rw *statusRecorder) WriteHeader(status int) {
	if rw.status == 0 {
		rw.status = status
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
