// Package router provides a generic HTTP router with typed handler contexts,
// middleware and centralized error handling.
//
// Routes match the exact request path. A path that exists for other methods
// answers 405 with an Allow header, HEAD falls back to the GET handler, and
// anything else answers 404. Router middleware runs for unmatched requests
// as well, so CORS preflight and access logs cover them.
//
// # Basic Usage
//
//	r := router.New[*router.Context]()
//
//	r.Get("/ping", func(ctx *router.Context) handler.Response {
//		return response.String("pong")
//	})
//
//	http.ListenAndServe(":8080", r)
//
// # Custom Contexts
//
// Any type implementing handler.Context can be used. A factory is required:
//
//	r := router.New[*AppContext](
//		router.WithContextFactory(func(w http.ResponseWriter, r *http.Request) *AppContext {
//			return &AppContext{Context: router.NewContext(w, r)}
//		}),
//	)
//
// # Errors
//
// Errors returned by responses, routing failures and recovered panics are
// passed to the error handler. The default handler writes plain text using
// the StatusCode method of the error when present. Use WithErrorHandler to
// render errors differently, for example response.JSONErrorHandler.
package router
