package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/qrdata/core/handler"
)

// routeError is a routing failure that carries its HTTP status.
type routeError struct {
	status int
	msg    string
}

func (e *routeError) Error() string {
	return e.msg
}

// StatusCode lets error handlers map the error without knowing this package.
func (e *routeError) StatusCode() int {
	return e.status
}

var (
	ErrNotFound         error = &routeError{status: http.StatusNotFound, msg: "not found"}
	ErrMethodNotAllowed error = &routeError{status: http.StatusMethodNotAllowed, msg: "method not allowed"}

	ErrNoContextFactory = errors.New("no context factory provided")
	ErrNilResponse      = errors.New("nil response")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrDuplicateRoute   = errors.New("duplicate route")
)

type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler writes the error as plain text.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError is passed to the error handler when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
