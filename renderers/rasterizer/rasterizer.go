// Package rasterizer is a backend whose native fit model is a single uniform
// scale. It draws into straight-alpha images, optionally over a background.
package rasterizer

import (
	"image"
	"image/color"

	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/fit"
	"github.com/putara/thumpsvg/pixel"
	"github.com/putara/thumpsvg/renderers/oksvg"
	"golang.org/x/image/draw"
)

// Name is the registry name of the backend.
const Name = "rasterizer"

// Options configures the backend.
type Options struct {
	// Background is painted under the drawing, nil leaves it transparent.
	Background color.Color

	// Strict fails on unsupported elements.
	Strict bool
}

// DefaultOptions are the default options.
var DefaultOptions = Options{}

// Backend is a rasterizing backend.
type Backend struct {
	opts Options
}

// New returns a rasterizing backend.
func New(opts *Options) *Backend {
	if opts == nil {
		opts = &DefaultOptions
	}
	return &Backend{
		opts: *opts,
	}
}

// Name returns the registry name.
func (b *Backend) Name() string {
	return Name
}

// Parse implements thumpsvg.Backend.
func (b *Backend) Parse(data []byte) (thumpsvg.Document, error) {
	doc, err := oksvg.Read(data, b.opts.Strict)
	if err != nil {
		return nil, err
	}
	return &Document{
		doc:        doc,
		background: b.opts.Background,
	}, nil
}

// Document is a parsed document. A document must not be rasterized from
// several goroutines at once.
type Document struct {
	doc        *oksvg.Document
	background color.Color
}

// Size implements thumpsvg.Document.
func (d *Document) Size() *fit.Size {
	return d.doc.Size()
}

// Rasterize implements thumpsvg.Document. The resolved parameter is reduced
// to its uniform scale.
func (d *Document) Rasterize(r fit.Resolved) (*pixel.Buffer, error) {
	size := d.doc.Size()
	if size == nil {
		return nil, fit.ErrUnresolvable
	}
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	if d.background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(d.background), image.Point{}, draw.Src)
	}
	Draw(d.doc, img, r.Param.Scale(*size))
	return pixel.FromImage(img)
}

// Draw draws doc on img at the given scale, anchored at the top-left corner.
// A document without an intrinsic size is not drawn.
func Draw(doc *oksvg.Document, img draw.Image, scale float64) {
	size := doc.Size()
	if size == nil {
		return
	}
	w, h := size.Width*scale, size.Height*scale
	oksvg.Draw(doc.Icon, img, oksvg.Target(doc.Icon, 0.0, 0.0, w, h))
}
