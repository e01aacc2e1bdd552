// Package sanitize prepares untrusted SVG bytes for an external renderer.
//
// It inflates gzip-compressed input (.svgz) and rewrites the BackgroundImage
// input of a few filter primitives to SourceGraphic, which some renderers do
// not support. The rewrite is done by a single-pass byte scanner that copies
// everything else verbatim, so malformed documents pass through untouched.
//
// All functions are stateless and safe for concurrent use.
package sanitize

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultMaxOutput is the default limit on the size of inflated input.
const DefaultMaxOutput = 256 << 20

var (
	// ErrNotCompressed is returned by Decompress when the input has no gzip header.
	ErrNotCompressed = errors.New("not gzip compressed")

	// ErrDecompress is returned by Decompress when the stream fails before producing output.
	ErrDecompress = errors.New("bad gzip stream")

	// ErrTooLarge is returned when the input or the inflated output exceeds the configured limits.
	ErrTooLarge = errors.New("input too large")
)

// Options limits the amount of memory a sanitizer run may allocate.
// A limit of zero or less disables the check.
type Options struct {
	MaxInput  int64 // maximum input length in bytes
	MaxOutput int64 // maximum inflated length in bytes
}

// DefaultOptions returns the limits used by the shell extension.
func DefaultOptions() Options {
	return Options{
		MaxInput:  math.MaxInt32,
		MaxOutput: DefaultMaxOutput,
	}
}

func (o Options) inputTooLarge(n int) bool {
	return 0 < o.MaxInput && o.MaxInput < int64(n)
}

func (o Options) outputTooLarge(n int) bool {
	return 0 < o.MaxOutput && o.MaxOutput < int64(n)
}

// Run inflates data if it is gzip compressed and patches the result. When
// decompression fails the original bytes are patched instead. The only error
// returned is ErrTooLarge, in which case the caller should fall back to the
// unsanitized input.
func Run(data []byte, opts Options) ([]byte, error) {
	if opts.inputTooLarge(len(data)) {
		return nil, ErrTooLarge
	}
	src := data
	dec, err := Decompress(data, opts)
	if err == nil {
		src = dec
	} else if errors.Is(err, ErrTooLarge) {
		return nil, err
	}
	return Patch(src), nil
}
