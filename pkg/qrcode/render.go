package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// QuietZone is the blank border, in modules, drawn around every symbol.
const QuietZone = 4

// Image is a rendered QR symbol. For FormatSVG, Data holds UTF-8 markup.
type Image struct {
	Format      Format
	ContentType string
	Scale       int
	Data        []byte
}

// Renderer draws a module matrix at the given pixels-per-module scale.
// Implementations must be deterministic for identical input.
type Renderer interface {
	Render(m *Matrix, scale int) (*Image, error)
}

// RendererFor returns the renderer of a normalized format.
func RendererFor(f Format) Renderer {
	if f == FormatSVG {
		return SVGRenderer{}
	}
	return PNGRenderer{}
}

// canvasModules returns the side length in modules including the quiet zone.
func canvasModules(m *Matrix) int {
	return m.Size() + 2*QuietZone
}

var pngPalette = color.Palette{color.White, color.Black}

// PNGRenderer draws every module as a solid scale×scale block in a two-colour PNG.
type PNGRenderer struct{}

// Render implements Renderer.
func (PNGRenderer) Render(m *Matrix, scale int) (*Image, error) {
	if m == nil || scale < 1 {
		return nil, fmt.Errorf("%w: nil matrix or non-positive scale", ErrFailedToRender)
	}

	side := canvasModules(m) * scale
	img := image.NewPaletted(image.Rect(0, 0, side, side), pngPalette)

	for y := range side {
		my := y/scale - QuietZone
		row := img.Pix[y*img.Stride : y*img.Stride+side]
		for x := range row {
			if m.Dark(x/scale-QuietZone, my) {
				row[x] = 1
			}
		}
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToRender, err)
	}

	return &Image{
		Format:      FormatPNG,
		ContentType: FormatPNG.ContentType(),
		Scale:       scale,
		Data:        buf.Bytes(),
	}, nil
}

// SVGRenderer emits one rectangle subpath per horizontal run of dark modules.
// Coordinates are in module units; width and height carry the scale.
type SVGRenderer struct{}

// Render implements Renderer.
func (SVGRenderer) Render(m *Matrix, scale int) (*Image, error) {
	if m == nil || scale < 1 {
		return nil, fmt.Errorf("%w: nil matrix or non-positive scale", ErrFailedToRender)
	}

	n := canvasModules(m)
	side := n * scale

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		side, side, n, n)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	b.WriteString(`<path fill="#000000" d="`)

	size := m.Size()
	for y := range size {
		for x := 0; x < size; {
			if !m.Dark(x, y) {
				x++
				continue
			}
			start := x
			for x < size && m.Dark(x, y) {
				x++
			}
			run := x - start
			fmt.Fprintf(&b, "M%d %dh%dv1h-%dz", start+QuietZone, y+QuietZone, run, run)
		}
	}

	b.WriteString(`"/></svg>`)

	return &Image{
		Format:      FormatSVG,
		ContentType: FormatSVG.ContentType(),
		Scale:       scale,
		Data:        []byte(b.String()),
	}, nil
}
