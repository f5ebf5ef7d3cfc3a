package qrcode

import "errors"

var (
	// ErrValidation is the base of every request validation failure.
	// Match it with errors.Is to map failures to a client error.
	ErrValidation = errors.New("validation error")

	// ErrCapacityExceeded indicates the text does not fit into any QR version
	// at the fixed error correction level. The text is never truncated.
	ErrCapacityExceeded = errors.New("text is too long to be encoded as a QR code")

	// ErrFailedToEncode indicates the symbol encoder failed for a reason other than capacity.
	ErrFailedToEncode = errors.New("failed to encode QR code")

	// ErrFailedToRender indicates the module matrix could not be rendered into an image.
	ErrFailedToRender = errors.New("failed to render QR code")

	// ErrInvalidMatrix indicates a bitmap that is empty or not square.
	ErrInvalidMatrix = errors.New("invalid module matrix")
)

// ValidationError describes a required request field that is missing or blank.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
