package api

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/qrdata/core/binder"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/pkg/qrcode"
)

// toHTTPError maps generation and binding failures to the JSON error
// contract. Unknown errors keep their cause for logging and render as 500.
func toHTTPError(err error) error {
	var verr *qrcode.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ErrBadRequest.
			WithMessage(verr.Error()).
			WithDetails(map[string]any{"field": verr.Field})
	case errors.Is(err, qrcode.ErrValidation):
		return response.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, qrcode.ErrCapacityExceeded):
		return response.ErrUnprocessableEntity.WithMessage(qrcode.ErrCapacityExceeded.Error())
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return response.ErrUnsupportedMediaType.WithMessage("content type must be application/json")
	case errors.Is(err, binder.ErrRequestTooLarge):
		return response.ErrRequestEntityTooLarge
	case errors.Is(err, binder.ErrFailedToParseJSON):
		return response.ErrBadRequest.WithMessage("invalid JSON body")
	case errors.Is(err, binder.ErrFailedToParseQuery):
		return response.ErrBadRequest.WithMessage("invalid query parameters")
	}
	return fmt.Errorf("%w: %w", response.ErrInternalServerError, err)
}
