package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/dmitrymomot/qrdata/core/handler"
)

var supportedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// mux is the private implementation of the Router interface.
// Routes are matched on the exact request path.
type mux[C handler.Context] struct {
	routes       map[string]map[string]handler.HandlerFunc[C]
	order        []Route
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		routes:       make(map[string]map[string]handler.HandlerFunc[C]),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}

			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	fn := m.lookup(ww, r)
	if len(m.middlewares) > 0 {
		fn = handler.Chain(fn, m.middlewares...)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

// lookup resolves the handler for r. Unmatched requests get a handler that
// fails with ErrNotFound or ErrMethodNotAllowed, so middleware still runs.
func (m *mux[C]) lookup(w http.ResponseWriter, r *http.Request) handler.HandlerFunc[C] {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	methods, ok := m.routes[path]
	if !ok {
		return failWith[C](ErrNotFound)
	}

	if fn, ok := methods[r.Method]; ok {
		return fn
	}
	if r.Method == http.MethodHead {
		if fn, ok := methods[http.MethodGet]; ok {
			return fn
		}
	}

	w.Header().Set("Allow", strings.Join(allowedMethods(methods), ", "))
	return failWith[C](ErrMethodNotAllowed)
}

func failWith[C handler.Context](err error) handler.HandlerFunc[C] {
	return func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error {
			return err
		}
	}
}

func allowedMethods[C handler.Context](methods map[string]handler.HandlerFunc[C]) []string {
	allowed := make([]string, 0, len(methods)+1)
	for _, method := range supportedMethods {
		if _, ok := methods[method]; ok {
			allowed = append(allowed, method)
		} else if method == http.MethodHead {
			if _, ok := methods[http.MethodGet]; ok {
				allowed = append(allowed, method)
			}
		}
	}
	return allowed
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Method registers a handler for each of the given methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	for _, method := range methods {
		m.handle(strings.ToUpper(method), pattern, h)
	}
}

// Use appends middleware that wraps every request handled by the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

// Routes returns registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	return slices.Clone(m.order)
}

func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if !slices.Contains(supportedMethods, method) {
		panic(fmt.Errorf("%w: %q", ErrInvalidMethod, method))
	}
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: routing pattern must begin with '/' in %q", ErrInvalidPattern, pattern))
	}
	if h == nil {
		panic(fmt.Errorf("%w: nil handler for %s %s", ErrInvalidPattern, method, pattern))
	}

	methods, ok := m.routes[pattern]
	if !ok {
		methods = make(map[string]handler.HandlerFunc[C])
		m.routes[pattern] = methods
	}
	if _, exists := methods[method]; exists {
		panic(fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, pattern))
	}

	methods[method] = h
	m.order = append(m.order, Route{Method: method, Pattern: pattern})
}
