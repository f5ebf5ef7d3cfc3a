package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/qrdata/core/handler"
)

type statusCode interface {
	StatusCode() int
}

type writtenChecker interface {
	Written() bool
}

// convertToHTTPError converts any error to an HTTPError. Errors exposing a
// StatusCode method map to the predefined error for that status.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}

	// Internal causes are not exposed to clients.
	if baseErr.Status >= http.StatusInternalServerError {
		return baseErr
	}
	return baseErr.WithError(err)
}

func alreadyWritten(ctx handler.Context) bool {
	wc, ok := ctx.ResponseWriter().(writtenChecker)
	return ok && wc.Written()
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON HTTPError documents.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
