// Package qrcode turns arbitrary text into a QR code image embedded in a data URL.
//
// The package wraps github.com/skip2/go-qrcode, which provides the symbol
// algorithm, and adds request validation, parameter normalization, PNG and SVG
// rendering, and data URL assembly. Error correction is fixed at Medium (level M),
// which recovers from roughly 15% symbol damage.
//
// # Pipeline
//
// A Request flows through a fixed chain of steps:
//
//   - Validate rejects empty or whitespace-only text with a *ValidationError.
//   - NormalizeFormat maps the format to png or svg, case-insensitively.
//   - NormalizeScale keeps a scale in [1, 50] and replaces anything else with 10.
//   - The Encoder produces a Matrix of modules.
//   - A Renderer draws the Matrix, with a 4-module quiet zone, as PNG or SVG.
//   - DataURL embeds the rendered bytes.
//
// Every call is independent and deterministic: identical requests produce
// identical data URLs.
//
// # Usage
//
// Generate a data URL:
//
//	res, err := qrcode.Generate(qrcode.Request{Text: "https://example.com"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf(`<img src="%s" alt="QR Code">`, res.DataURL)
//
// Raw image bytes for an HTTP handler:
//
//	func qrHandler(w http.ResponseWriter, r *http.Request) {
//		img, err := qrcode.New().Render(qrcode.Request{
//			Text:   r.URL.Query().Get("text"),
//			Format: r.URL.Query().Get("format"),
//		})
//		if errors.Is(err, qrcode.ErrValidation) {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		if err != nil {
//			http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
//			return
//		}
//
//		w.Header().Set("Content-Type", img.ContentType)
//		w.Write(img.Data)
//	}
//
// # Normalization
//
// Optional parameters never cause errors. An unknown format becomes png and an
// out-of-range scale becomes the default rather than the nearest bound:
//
//	qrcode.NormalizeFormat("SVG")  // svg
//	qrcode.NormalizeFormat("gif")  // png
//	qrcode.NormalizeScale(0)       // 10
//	qrcode.NormalizeScale(1000)    // 10
//	qrcode.NormalizeScale(50)      // 50
//
// # Error Handling
//
//   - ErrValidation: text missing or blank (wrapped by *ValidationError).
//   - ErrCapacityExceeded: text too long for any QR version at level M.
//     Text is never truncated.
//   - ErrFailedToEncode, ErrFailedToRender: unexpected library failures.
//
// Compare with errors.Is.
//
// # Content Limitations
//
// Level M holds at most 2331 bytes of binary data (more for purely numeric or
// upper-case alphanumeric text). Data URLs grow with content and scale; no
// size limit is enforced here.
package qrcode
