package router

import (
	"net/http"

	"github.com/dmitrymomot/qrdata/core/handler"
)

// Router dispatches requests to handlers registered for an exact path and method.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. Middleware also runs for unmatched requests,
	// so CORS preflight and access logging see 404 and 405 responses.
	Use(middlewares ...handler.Middleware[C])

	Routes() []Route
}

// Route describes a registered method and path.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
