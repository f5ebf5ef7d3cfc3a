package qrcode

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/qrdata/core/validator"
)

// Request holds raw generation parameters as received from a caller.
// Zero values mean "not provided" and are replaced by defaults during normalization.
type Request struct {
	// Text is the payload to encode. Required.
	Text string `validate:"required"`
	// Format is the requested output format, "png" or "svg" in any casing.
	Format string
	// PixelsPerModule is the edge length of one module in pixels.
	PixelsPerModule int
}

// Validate reports a *ValidationError when Text is empty or whitespace only.
// Optional fields never fail validation; they are corrected by normalization.
func (r Request) Validate() error {
	err := validator.ValidateStruct(&r)
	if err == nil {
		return nil
	}

	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		first := verrs[0]
		return &ValidationError{Field: strings.ToLower(first.Field), Message: first.Message}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
