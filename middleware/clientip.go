package middleware

import (
	"context"

	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/pkg/clientip"
)

type clientIPContextKey struct{}

// ClientIP resolves the client address with clientip.GetIP and stores it
// in the context for later middleware such as RateLimit.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			ctx.SetValue(clientIPContextKey{}, clientip.GetIP(ctx.Request()))
			return next(ctx)
		}
	}
}

// GetClientIP returns the address stored by ClientIP.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
