// Package oksvg is a backend built on github.com/srwiley/oksvg. Its native
// fit model is a target box: the viewBox is stretched onto a rectangle given
// in output pixels.
package oksvg

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/pkg/errors"
	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/fit"
	"github.com/putara/thumpsvg/pixel"
	"github.com/putara/thumpsvg/probe"
	svg "github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Name is the registry name of the backend.
const Name = "oksvg"

// Options configures the backend.
type Options struct {
	// Strict fails on elements the parser does not support instead of
	// skipping them.
	Strict bool
}

// DefaultOptions are the default options.
var DefaultOptions = Options{
	Strict: false,
}

// Backend parses documents into oksvg icons.
type Backend struct {
	opts Options
}

// New returns an oksvg backend.
func New(opts *Options) *Backend {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
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
	doc, err := Read(data, b.opts.Strict)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Document is a parsed icon. A document must not be rasterized from several
// goroutines at once.
type Document struct {
	Icon *svg.SvgIcon
	size *fit.Size
}

// Read parses data. The intrinsic size comes from the root width and height
// in CSS units, or from the viewBox the parser found when those are absent.
// Without a viewBox, user units are CSS pixels of the intrinsic size.
func Read(data []byte, strict bool) (*Document, error) {
	mode := svg.IgnoreErrorMode
	if strict {
		mode = svg.StrictErrorMode
	}
	icon, err := svg.ReadIconStream(bytes.NewReader(data), mode)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	doc := &Document{Icon: icon}
	info, err := probe.Parse(data)
	if size, sizeErr := info.Size(); err == nil && sizeErr == nil {
		doc.size = &size
		if !info.HasViewBox {
			icon.ViewBox.X, icon.ViewBox.Y = 0.0, 0.0
			icon.ViewBox.W, icon.ViewBox.H = size.Width, size.Height
		}
	} else if 0.0 < icon.ViewBox.W && 0.0 < icon.ViewBox.H {
		doc.size = &fit.Size{Width: icon.ViewBox.W, Height: icon.ViewBox.H}
	}
	return doc, nil
}

// Size implements thumpsvg.Document.
func (d *Document) Size() *fit.Size {
	return d.size
}

// Rasterize implements thumpsvg.Document.
func (d *Document) Rasterize(r fit.Resolved) (*pixel.Buffer, error) {
	if d.size == nil {
		return nil, fit.ErrUnresolvable
	}
	w, h := Box(*d.size, r.Param)
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	Draw(d.Icon, img, Target(d.Icon, 0.0, 0.0, w, h))
	return pixel.FromImage(img)
}

// Box returns the size of the target box for a resolved parameter. A pinned
// axis is returned exactly, the other follows the aspect ratio.
func Box(size fit.Size, param fit.Param) (float64, float64) {
	switch param.Kind {
	case fit.PinWidth:
		return param.Value, size.Height * param.Value / size.Width
	case fit.PinHeight:
		return size.Width * param.Value / size.Height, param.Value
	}
	s := param.Scale(size)
	return size.Width * s, size.Height * s
}

// Target returns the transformation that maps the icon's viewBox onto the
// box at (x, y) of size w by h. An empty viewBox axis is not scaled.
func Target(icon *svg.SvgIcon, x, y, w, h float64) rasterx.Matrix2D {
	sx, sy := 1.0, 1.0
	if 0.0 < icon.ViewBox.W {
		sx = w / icon.ViewBox.W
	}
	if 0.0 < icon.ViewBox.H {
		sy = h / icon.ViewBox.H
	}
	return rasterx.Identity.Translate(x, y).Scale(sx, sy).Translate(-icon.ViewBox.X, -icon.ViewBox.Y)
}

// Draw renders icon into dst with transformation m.
func Draw(icon *svg.SvgIcon, dst draw.Image, m rasterx.Matrix2D) {
	size := dst.Bounds().Size()
	scanner := rasterx.NewScannerGV(size.X, size.Y, dst, dst.Bounds())
	raster := rasterx.NewDasher(size.X, size.Y, scanner)
	icon.Transform = m
	icon.Draw(raster, 1.0)
}
