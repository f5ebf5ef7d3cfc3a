package qrcode

import (
	"encoding/base64"
	"net/url"
)

// DataURL embeds a rendered image into a self-contained data URL.
//
// Raster images are base64 encoded. Vector markup is declared as utf8 text and
// percent-encoded, so '#', '%', whitespace, quotes, angle brackets and every
// non-ASCII byte are escaped before embedding.
func DataURL(img *Image) string {
	if img.Format == FormatSVG {
		return "data:" + img.ContentType + ";utf8," + url.PathEscape(string(img.Data))
	}
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
