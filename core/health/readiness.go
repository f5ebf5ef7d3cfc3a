package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/logger"
	"github.com/dmitrymomot/qrdata/core/response"
)

// DefaultCheckTimeout bounds every readiness check.
const DefaultCheckTimeout = 2 * time.Second

// Check verifies a single dependency.
type Check func(ctx context.Context) error

// Readiness answers "READY" when every check passes and 503 otherwise.
// Checks run in order, each under DefaultCheckTimeout.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for i, check := range checks {
			if check == nil {
				continue
			}

			checkCtx, cancel := context.WithTimeout(ctx, DefaultCheckTimeout)
			err := check(checkCtx)
			cancel()

			if err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Count("check", i),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
