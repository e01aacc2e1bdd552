package pixel

import (
	"math"

	"github.com/pkg/errors"
)

// MaxBytes is the largest bitmap Convert will allocate.
const MaxBytes = math.MaxInt32

var (
	// ErrDegenerate is returned for buffers without pixels.
	ErrDegenerate = errors.New("degenerate dimensions")

	// ErrInvalidBuffer is returned for buffers whose stride, length or layout is inconsistent.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")

	// ErrTooLarge is returned when the bitmap would exceed MaxBytes.
	ErrTooLarge = errors.New("bitmap too large")
)

// Buffer is the raw output of a rasterizer.
type Buffer struct {
	Width, Height int
	Stride        int // bytes per row, at least 4*Width
	Layout        Layout
	BottomUp      bool // first row in Pix is the bottom row of the image
	Pix           []byte
}

// Validate checks that b describes at least one pixel and that Pix holds
// every row. The padding after the last row may be missing.
func (b *Buffer) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return errors.Wrapf(ErrInvalidBuffer, "negative size %dx%d", b.Width, b.Height)
	} else if b.Width == 0 || b.Height == 0 {
		return ErrDegenerate
	} else if !b.Layout.IsValid() {
		return errors.Wrapf(ErrInvalidBuffer, "unknown layout %d", b.Layout)
	} else if MaxBytes/4/b.Height < b.Width {
		return errors.Wrapf(ErrTooLarge, "%dx%d", b.Width, b.Height)
	} else if b.Stride < 4*b.Width {
		return errors.Wrapf(ErrInvalidBuffer, "stride %d shorter than row of %d pixels", b.Stride, b.Width)
	} else if int64(len(b.Pix)) < int64(b.Height-1)*int64(b.Stride)+int64(4*b.Width) {
		return errors.Wrapf(ErrInvalidBuffer, "%d bytes for %dx%d pixels with stride %d", len(b.Pix), b.Width, b.Height, b.Stride)
	}
	return nil
}

// unpremul[a][c] is the straight value of premultiplied channel c at alpha a,
// rounded to nearest. Row 0 is all zeros so fully transparent pixels become
// transparent black.
var unpremul = func() (t [256][256]uint8) {
	for a := 1; a < 256; a++ {
		for c := 0; c < 256; c++ {
			v := (c*255 + a/2) / a
			if 255 < v {
				v = 255
			}
			t[a][c] = uint8(v)
		}
	}
	return
}()

// visible[a] masks away the color of fully transparent pixels.
var visible = func() (t [256]uint8) {
	for a := 1; a < 256; a++ {
		t[a] = 0xff
	}
	return
}()

// Premultiply scales a straight color channel by alpha, rounded to nearest.
func Premultiply(c, a uint8) uint8 {
	return uint8((int(c)*int(a) + 127) / 255)
}

// Unpremultiply returns the straight value of a premultiplied channel.
func Unpremultiply(c, a uint8) uint8 {
	return unpremul[a][c]
}

// Convert copies src into a new canonical bitmap. It returns ErrDegenerate
// when src has no pixels, so that callers never receive an empty bitmap.
func Convert(src *Buffer) (*Bitmap, error) {
	if src == nil {
		return nil, errors.Wrap(ErrInvalidBuffer, "nil buffer")
	} else if err := src.Validate(); err != nil {
		return nil, err
	}

	w, h := src.Width, src.Height
	rowBytes := 4 * w
	dst := NewBitmap(w, h)

	// byte offsets of red and blue within a source pixel
	ri, bi := 0, 2
	if src.Layout.IsBGR() {
		ri, bi = 2, 0
	}
	premultiplied := src.Layout.IsPremultiplied()

	for y := 0; y < h; y++ {
		dy := h - 1 - y
		if src.BottomUp {
			dy = y
		}
		s := src.Pix[y*src.Stride : y*src.Stride+rowBytes]
		d := dst.Pix[dy*rowBytes : dy*rowBytes+rowBytes]
		if premultiplied {
			unpremultiplyRow(d, s, ri, bi)
		} else {
			straightRow(d, s, ri, bi)
		}
	}
	return dst, nil
}

// TODO: SIMD
func unpremultiplyRow(d, s []byte, ri, bi int) {
	for i := 0; i+3 < len(s); i += 4 {
		a := s[i+3]
		t := &unpremul[a]
		d[i+0] = t[s[i+bi]]
		d[i+1] = t[s[i+1]]
		d[i+2] = t[s[i+ri]]
		d[i+3] = a
	}
}

func straightRow(d, s []byte, ri, bi int) {
	for i := 0; i+3 < len(s); i += 4 {
		a := s[i+3]
		m := visible[a]
		d[i+0] = s[i+bi] & m
		d[i+1] = s[i+1] & m
		d[i+2] = s[i+ri] & m
		d[i+3] = a
	}
}
