package binder

import "net/http"

// Binder decodes request data into a Go value.
type Binder func(r *http.Request, v any) error

type options struct {
	maxSize      int64
	allowUnknown bool
}

// Option configures a binder.
type Option func(*options)

// WithMaxSize limits the accepted body size in bytes. Non-positive values
// keep the default.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithUnknownFields makes the JSON binder ignore fields the target does not declare.
func WithUnknownFields() Option {
	return func(o *options) {
		o.allowUnknown = true
	}
}

func newOptions(opts []Option) options {
	o := options{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
