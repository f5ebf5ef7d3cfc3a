// Package middleware provides HTTP middleware for the qrdata service:
// request IDs, client IP resolution, access logging, CORS and rate limiting.
//
// Every middleware is generic over a handler.Context type and comes in two
// forms, a default constructor and a WithConfig variant. Config structs accept
// a Skip function to bypass the middleware per request.
//
// Middleware that decorate responses wrap the handler.Response returned by the
// next handler, so headers such as X-Request-ID, CORS headers and X-RateLimit-*
// are present on error responses rendered by the router error handler too.
//
// # Ordering
//
// handler.Chain runs the first middleware outermost. A typical stack:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.ClientIP[*router.Context](),
//		middleware.Logging[*router.Context](log),
//		middleware.CORS[*router.Context](),
//		middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
//			Limiter:    limiter,
//			SetHeaders: true,
//		}),
//	)
//
// RateLimit keys requests by the address stored by ClientIP and falls back to
// resolving it itself when ClientIP is not installed.
//
// # Context values
//
// GetRequestID and GetClientIP read the values back from any context.Context
// derived from the request. RequestIDExtractor plugs the request ID into
// logger.WithContextExtractors so every record logged with a request context
// carries request_id.
package middleware
