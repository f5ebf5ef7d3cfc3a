package qrcode

// Result is the outcome of a generation request. Format and PixelsPerModule
// carry the values actually applied after normalization.
type Result struct {
	DataURL         string `json:"dataUrl"`
	ContentType     string `json:"contentType"`
	Format          Format `json:"format"`
	PixelsPerModule int    `json:"pixelsPerModule"`
}

// Generator runs the validate, normalize, encode, render pipeline.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	encoder Encoder
}

// Option configures a Generator.
type Option func(*Generator)

// WithEncoder replaces the default skip2/go-qrcode encoder.
func WithEncoder(enc Encoder) Option {
	return func(g *Generator) {
		if enc != nil {
			g.encoder = enc
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{encoder: DefaultEncoder()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render validates and normalizes req, encodes the text and renders the symbol.
// It stops short of building the data URL, for callers that serve raw bytes.
func (g *Generator) Render(req Request) (*Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	format := NormalizeFormat(req.Format)
	scale := NormalizeScale(req.PixelsPerModule)

	m, err := g.encoder.Encode(req.Text)
	if err != nil {
		return nil, err
	}

	return RendererFor(format).Render(m, scale)
}

// Generate runs the full pipeline and returns the assembled Result.
func (g *Generator) Generate(req Request) (*Result, error) {
	img, err := g.Render(req)
	if err != nil {
		return nil, err
	}
	return assemble(img), nil
}

func assemble(img *Image) *Result {
	return &Result{
		DataURL:         DataURL(img),
		ContentType:     img.ContentType,
		Format:          img.Format,
		PixelsPerModule: img.Scale,
	}
}

var defaultGenerator = New()

// Generate runs req through a Generator with the default encoder.
func Generate(req Request) (*Result, error) {
	return defaultGenerator.Generate(req)
}
