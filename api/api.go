package api

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/dmitrymomot/qrdata/core/binder"
	"github.com/dmitrymomot/qrdata/core/handler"
	"github.com/dmitrymomot/qrdata/core/logger"
	"github.com/dmitrymomot/qrdata/core/response"
	"github.com/dmitrymomot/qrdata/core/router"
	"github.com/dmitrymomot/qrdata/pkg/qrcode"
)

const (
	// ImageCacheMaxAge is the Cache-Control max-age of raw image responses.
	ImageCacheMaxAge = time.Hour

	etagLength = 16
)

// API serves QR code generation over HTTP.
type API struct {
	generator *qrcode.Generator
	bindJSON  binder.Binder
	bindQuery binder.Binder
	logger    *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithGenerator replaces the default generator.
func WithGenerator(g *qrcode.Generator) Option {
	return func(a *API) {
		if g != nil {
			a.generator = g
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMaxBodySize limits JSON request bodies. Defaults to binder.DefaultMaxJSONSize.
func WithMaxBodySize(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.bindJSON = binder.JSON(binder.WithUnknownFields(), binder.WithMaxSize(n))
		}
	}
}

// New creates an API.
func New(opts ...Option) *API {
	a := &API{
		generator: qrcode.New(),
		bindJSON:  binder.JSON(binder.WithUnknownFields()),
		bindQuery: binder.Query(),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register mounts the QR code routes on r.
func Register[C handler.Context](r router.Router[C], a *API) {
	r.Post("/api/qrcode", GenerateFromBody[C](a))
	r.Get("/api/qrcode", GenerateFromQuery[C](a))
	r.Get("/api/qrcode/image", Image[C](a))
}

// GenerateFromBody handles POST /api/qrcode with a JSON body.
func GenerateFromBody[C handler.Context](a *API) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var body generateBody
		if err := a.bindJSON(ctx.Request(), &body); err != nil {
			return response.Error(toHTTPError(err))
		}
		return a.generate(ctx, body.request())
	}
}

// GenerateFromQuery handles GET /api/qrcode.
func GenerateFromQuery[C handler.Context](a *API) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var q generateQuery
		if err := a.bindQuery(ctx.Request(), &q); err != nil {
			return response.Error(toHTTPError(err))
		}
		return a.generate(ctx, q.request())
	}
}

// Image handles GET /api/qrcode/image and responds with the raw image.
// The body only depends on the parameters, so it is cacheable and tagged
// with a digest of its bytes.
func Image[C handler.Context](a *API) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var q generateQuery
		if err := a.bindQuery(ctx.Request(), &q); err != nil {
			return response.Error(toHTTPError(err))
		}

		img, err := a.generator.Render(q.request())
		if err != nil {
			return response.Error(toHTTPError(err))
		}

		a.logger.DebugContext(ctx, "QR code image rendered",
			logger.Component("api"),
			slog.String("format", string(img.Format)),
			slog.Int("pixels_per_module", img.Scale),
			logger.Count("bytes", len(img.Data)),
		)

		return response.WithCache(
			response.WithETag(response.Bytes(img.Data, img.ContentType), digest(img.Data)),
			ImageCacheMaxAge,
		)
	}
}

func (a *API) generate(ctx handler.Context, req qrcode.Request) handler.Response {
	res, err := a.generator.Generate(req)
	if err != nil {
		return response.Error(toHTTPError(err))
	}

	a.logger.DebugContext(ctx, "QR code generated",
		logger.Component("api"),
		slog.String("format", string(res.Format)),
		slog.Int("pixels_per_module", res.PixelsPerModule),
		logger.Count("data_url_length", len(res.DataURL)),
	)

	return response.JSON(res)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:etagLength]
}
