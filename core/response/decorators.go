package response

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/qrdata/core/handler"
)

// WithHeaders wraps a response with custom HTTP headers.
// Headers are set before the wrapped response is rendered.
func WithHeaders(response handler.Response, headers map[string]string) handler.Response {
	if response == nil {
		return nil
	}
	if len(headers) == 0 {
		return response
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return response(w, r)
	}
}

// WithCache wraps a response with cache control headers.
// A positive maxAge allows public caching, anything else disables caching.
func WithCache(response handler.Response, maxAge time.Duration) handler.Response {
	if response == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		if maxAge > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		return response(w, r)
	}
}

// WithETag sets a strong ETag on the response. When the request carries a
// matching If-None-Match, the wrapped response is skipped and 304 is sent.
func WithETag(response handler.Response, etag string) handler.Response {
	if response == nil || etag == "" {
		return response
	}
	quoted := `"` + strings.Trim(etag, `"`) + `"`
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("ETag", quoted)
		if etagMatch(r.Header.Get("If-None-Match"), quoted) {
			w.WriteHeader(http.StatusNotModified)
			return nil
		}
		return response(w, r)
	}
}

func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
