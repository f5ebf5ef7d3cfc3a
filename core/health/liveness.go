package health

import (
	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/response"
)

// Liveness reports that the process is serving. It answers "ALIVE" with
// 200 OK and checks nothing else.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
