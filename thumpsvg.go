// Package thumpsvg turns SVG documents into thumbnail bitmaps. A Renderer
// normalises and sanitizes the input, resolves the requested fit policy
// against the document's intrinsic size, rasterizes through a Backend and
// converts the result into the canonical bottom-up BGRA layout.
package thumpsvg

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/putara/thumpsvg/fit"
	"github.com/putara/thumpsvg/pixel"
	"github.com/putara/thumpsvg/sanitize"
	"github.com/rs/zerolog"
)

// DefaultMaxInputSize is the largest stream Load accepts by default.
const DefaultMaxInputSize = 32 << 20

var (
	// ErrInputTooLarge is returned when the input stream exceeds the size cap.
	ErrInputTooLarge = errors.New("input too large")

	// ErrInvalidArgument is returned for out of range requests.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyInput is returned for empty documents.
	ErrEmptyInput = errors.New("empty input")
)

// Backend parses SVG documents. Implementations must be safe for concurrent use.
type Backend interface {
	Name() string
	Parse(data []byte) (Document, error)
}

// Document is a parsed SVG document.
type Document interface {
	// Size returns the intrinsic size in CSS pixels, or nil when the
	// document does not define one.
	Size() *fit.Size

	// Rasterize draws the document into a buffer of exactly r.Width by
	// r.Height pixels.
	Rasterize(r fit.Resolved) (*pixel.Buffer, error)
}

// Options configures a Renderer.
type Options struct {
	// Workaround patches filter inputs the backends cannot render.
	Workaround bool

	// MaxInputSize caps the bytes read by LoadFile.
	MaxInputSize int64

	Sanitize sanitize.Options
	Logger   *zerolog.Logger
}

// DefaultOptions returns the options used by the shell extension.
func DefaultOptions() Options {
	return Options{
		Workaround:   true,
		MaxInputSize: DefaultMaxInputSize,
		Sanitize:     sanitize.DefaultOptions(),
	}
}

// Renderer runs the thumbnail pipeline. It holds immutable configuration
// only and is safe for concurrent use.
type Renderer struct {
	backend Backend
	opts    Options
	logger  zerolog.Logger
}

// New returns a Renderer that rasterizes with b.
func New(b Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		opts:    opts,
		logger:  componentLogger(opts.Logger, "renderer").With().Str("backend", b.Name()).Logger(),
	}
}

// Backend returns the backend of r.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// Prepare returns the bytes handed to the backend: decompressed, normalised
// to UTF-8 and, when the workaround is enabled, patched. A stream that fails
// to decompress is passed on as is, unless it exceeds the size limits.
func (r *Renderer) Prepare(data []byte) ([]byte, error) {
	if sanitize.IsCompressed(data) {
		out, err := sanitize.Decompress(data, r.opts.Sanitize)
		if errors.Is(err, sanitize.ErrTooLarge) {
			return nil, err
		} else if err != nil {
			r.logger.Warn().Err(err).Int("size", len(data)).Msg("decompression failed, using original input")
		} else {
			r.logger.Debug().Int("compressed", len(data)).Int("size", len(out)).Msg("decompressed")
			data = out
		}
	}
	data = NormalizeText(data)
	if r.opts.Workaround {
		data = sanitize.Patch(data)
	}
	return data, nil
}

// Parse prepares data and parses it with the backend.
func (r *Renderer) Parse(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	data, err := r.Prepare(data)
	if err != nil {
		return nil, err
	}
	doc, err := r.backend.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, r.backend.Name())
	}
	return doc, nil
}

// ResolveSize returns the bitmap size and rasterizer parameter that Render
// would use for data.
func (r *Renderer) ResolveSize(data []byte, p fit.Policy) (fit.Resolved, error) {
	doc, err := r.Parse(data)
	if err != nil {
		return fit.Resolved{}, err
	}
	return fit.Resolve(p, doc.Size())
}

// Render rasterizes data under policy p into a canonical bitmap.
func (r *Renderer) Render(data []byte, p fit.Policy) (*pixel.Bitmap, error) {
	doc, err := r.Parse(data)
	if err != nil {
		return nil, err
	}
	return r.RenderDocument(doc, p)
}

// RenderDocument rasterizes an already parsed document under policy p.
func (r *Renderer) RenderDocument(doc Document, p fit.Policy) (*pixel.Bitmap, error) {
	size := doc.Size()
	res, err := fit.Resolve(p, size)
	if err != nil {
		return nil, err
	} else if res.Empty() {
		r.logger.Debug().Str("policy", p.String()).Stringer("size", size).Msg("resolved to an empty bitmap")
		return nil, errors.Wrapf(pixel.ErrDegenerate, "%s for %v", p, size)
	}
	r.logger.Debug().Str("policy", p.String()).Stringer("size", size).Stringer("resolved", res).Msg("rasterize")

	buf, err := doc.Rasterize(res)
	if err != nil {
		return nil, errors.Wrap(err, r.backend.Name())
	} else if buf.Width != res.Width || buf.Height != res.Height {
		return nil, errors.Wrapf(pixel.ErrInvalidBuffer, "%s returned %dx%d for %dx%d", r.backend.Name(), buf.Width, buf.Height, res.Width, res.Height)
	}
	return pixel.Convert(buf)
}

// Thumbnail renders data to fit within a cx by cx square, keeping the aspect
// ratio.
func (r *Renderer) Thumbnail(data []byte, cx uint32) (*pixel.Bitmap, error) {
	if math.MaxInt32 <= cx {
		return nil, errors.Wrapf(ErrInvalidArgument, "thumbnail size %d", cx)
	}
	return r.Render(data, fit.Contain(cx, cx))
}

// Load reads all of r, failing with ErrInputTooLarge when it holds more than
// max bytes. A max of zero or less disables the cap.
func Load(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		data, err := io.ReadAll(r)
		return data, errors.Wrap(err, "read")
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, errors.Wrap(err, "read")
	} else if max < int64(len(data)) {
		return nil, errors.Wrapf(ErrInputTooLarge, "more than %d bytes", max)
	}
	return data, nil
}

// LoadFile reads the named file with the renderer's input cap.
func (r *Renderer) LoadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil && 0 < r.opts.MaxInputSize && r.opts.MaxInputSize < fi.Size() {
		return nil, errors.Wrapf(ErrInputTooLarge, "%s is %d bytes", filename, fi.Size())
	}
	return Load(f, r.opts.MaxInputSize)
}
