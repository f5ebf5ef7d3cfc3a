package qrcode

import (
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// Encoder turns text into a module matrix at error correction level M.
type Encoder interface {
	Encode(text string) (*Matrix, error)
}

// EncoderFunc adapts a plain function to the Encoder interface.
type EncoderFunc func(text string) (*Matrix, error)

// Encode calls f(text).
func (f EncoderFunc) Encode(text string) (*Matrix, error) {
	return f(text)
}

// DefaultEncoder returns the encoder backed by github.com/skip2/go-qrcode.
// It uses Medium recovery (level M, ~15% damage) and leaves the quiet zone to the renderer.
func DefaultEncoder() Encoder {
	return EncoderFunc(encodeMedium)
}

func encodeMedium(text string) (*Matrix, error) {
	qr, err := goqrcode.New(text, goqrcode.Medium)
	if err != nil {
		// The library reports capacity overflow only through the message.
		if strings.Contains(err.Error(), "too long") {
			return nil, fmt.Errorf("%w: %d bytes at level M", ErrCapacityExceeded, len(text))
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToEncode, err)
	}
	qr.DisableBorder = true

	m, err := NewMatrix(qr.Bitmap())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToEncode, err)
	}
	return m, nil
}
