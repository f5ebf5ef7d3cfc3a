// Package binder decodes HTTP request data into Go structs.
//
// JSON binds a request body:
//
//	var req CreateRequest
//	if err := binder.JSON(binder.WithMaxSize(64<<10))(r, &req); err != nil {
//		return response.Error(err)
//	}
//
// Query binds URL query parameters using `query` struct tags.
//
// Failures wrap one of the package sentinels (ErrMissingContentType,
// ErrUnsupportedMediaType, ErrRequestTooLarge, ErrFailedToParseJSON,
// ErrFailedToParseQuery), so callers map them with errors.Is. Values are
// never rewritten: binders do not trim or sanitize strings.
package binder
