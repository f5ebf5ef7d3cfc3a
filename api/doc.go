// Package api exposes QR code generation over HTTP.
//
//	POST /api/qrcode        JSON body {"text", "format"?, "pixelsPerModule"?}
//	GET  /api/qrcode        same parameters in the query string
//	GET  /api/qrcode/image  raw PNG or SVG bytes
//
// The first two respond with {"dataUrl", "contentType", "format",
// "pixelsPerModule"}. Optional parameters never fail a request: a non-string
// format or a non-numeric pixelsPerModule is treated as absent and replaced
// by the default. Unknown JSON fields are ignored.
//
// Failures follow the JSON error contract of response.HTTPError:
//
//	400 bad_request             missing or blank text, malformed JSON
//	413 request_entity_too_large  body over the configured limit
//	415 unsupported_media_type  body is not application/json
//	422 unprocessable_entity    text does not fit into a QR code
//
// Mount the routes with Register on a router whose error handler is
// response.JSONErrorHandler.
package api
