// Package handler defines the request processing contract shared by the
// router, the response helpers and the middleware.
//
// A handler receives a Context and returns a Response. Rendering is deferred:
// the Response runs after every middleware has had a chance to wrap it, and an
// error returned from it is routed to the ErrorHandler instead of being written
// by the handler itself.
//
//	func hello(ctx handler.Context) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			w.Header().Set("Content-Type", "text/plain")
//			_, err := w.Write([]byte("hello"))
//			return err
//		}
//	}
//
// Middleware composes with Chain; the first middleware given is the outermost:
//
//	h := handler.Chain(hello, requestID, logging)
package handler
