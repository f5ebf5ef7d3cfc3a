package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/dmitrymomot/qrdata/pkg/qrcode"
)

// optionalString decodes a JSON string. Any other JSON value leaves it empty.
type optionalString string

func (s *optionalString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = optionalString(v)
	return nil
}

// optionalInt decodes an integral JSON number or a decimal integer string.
// Any other JSON value leaves it zero, which normalization replaces with
// the default scale.
type optionalInt int

func (n *optionalInt) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*n = optionalInt(parseScale(s))
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
		*n = optionalInt(int(f))
	}
	return nil
}

// parseScale returns 0 for anything that is not a decimal integer.
func parseScale(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// generateBody is the POST /api/qrcode payload. Unknown fields are ignored.
type generateBody struct {
	Text            string         `json:"text"`
	Format          optionalString `json:"format"`
	PixelsPerModule optionalInt    `json:"pixelsPerModule"`
}

func (b generateBody) request() qrcode.Request {
	return qrcode.Request{
		Text:            b.Text,
		Format:          string(b.Format),
		PixelsPerModule: int(b.PixelsPerModule),
	}
}

// generateQuery carries the same parameters in the query string. The scale
// is bound as a string so a non-numeric value is treated as absent instead
// of failing the request.
type generateQuery struct {
	Text            string `query:"text"`
	Format          string `query:"format"`
	PixelsPerModule string `query:"pixelsPerModule"`
}

func (q generateQuery) request() qrcode.Request {
	return qrcode.Request{
		Text:            q.Text,
		Format:          q.Format,
		PixelsPerModule: parseScale(q.PixelsPerModule),
	}
}
