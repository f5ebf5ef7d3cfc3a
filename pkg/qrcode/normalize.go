package qrcode

import "strings"

// Format is a normalized output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ContentType returns the MIME type of images rendered in this format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

const (
	// DefaultScale is applied when the requested scale is absent or out of range.
	DefaultScale = 10
	// MinScale and MaxScale bound an accepted scale, inclusive.
	MinScale = 1
	MaxScale = 50
)

// NormalizeFormat lower-cases s and returns FormatSVG only for an exact "svg".
// Every other value, including the empty string, falls back to FormatPNG.
func NormalizeFormat(s string) Format {
	if strings.ToLower(s) == string(FormatSVG) {
		return FormatSVG
	}
	return FormatPNG
}

// NormalizeScale returns n when it lies in [MinScale, MaxScale] and DefaultScale otherwise.
// Out-of-range values are replaced by the default, not clamped to the nearest bound:
// 0 and 1000 both become 10.
func NormalizeScale(n int) int {
	if n < MinScale || n > MaxScale {
		return DefaultScale
	}
	return n
}
