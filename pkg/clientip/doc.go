// Package clientip extracts the client IP address from HTTP requests.
//
// Headers are checked in priority order: CF-Connecting-IP,
// DO-Connecting-IP, X-Forwarded-For (leftmost entry), X-Real-IP, then
// RemoteAddr. Values are validated with net.ParseIP and normalized;
// unspecified addresses such as 0.0.0.0 are skipped.
//
//	key := clientip.GetIP(r)
//
// Proxy headers are trusted as sent. Deploy behind a proxy that overwrites
// them, otherwise clients can choose their own rate limit key.
package clientip
