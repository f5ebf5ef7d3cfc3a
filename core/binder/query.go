package binder

import (
	"net/http"
)

// Query creates a query parameter binder.
//
// Fields bind by the `query` struct tag, falling back to the lower-cased
// field name; `query:"-"` skips a field. Supported kinds are string, signed
// integers and bool, plus pointers to them for optional parameters. Only the
// first value of a repeated parameter is used. Absent parameters leave the
// field untouched.
//
//	type params struct {
//		Text   string `query:"text"`
//		Format string `query:"format"`
//		Scale  *int   `query:"scale"`
//	}
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
