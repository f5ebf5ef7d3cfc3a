// Package response provides handler.Response constructors for plain text,
// bytes and JSON, response decorators for caching headers, and error
// handlers that render errors as text or JSON.
//
// Responses are closures rendered by the router after the handler returns:
//
//	func ping(ctx handler.Context) handler.Response {
//		return response.JSON(map[string]string{"status": "ok"})
//	}
//
// Returning response.Error(err) hands err to the router error handler.
// JSONErrorHandler writes it as
//
//	{"code": "bad_request", "error": "text is required"}
//
// using the HTTPError carried by err, or the predefined HTTPError matching the
// StatusCode method of err. Everything else becomes a 500 without details.
//
// Decorators compose:
//
//	resp := response.Bytes(img, "image/png")
//	resp = response.WithETag(resp, digest)
//	resp = response.WithCache(resp, time.Hour)
package response
