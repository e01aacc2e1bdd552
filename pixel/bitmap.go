package pixel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Bitmap is the canonical output layout: Width*Height pixels of B, G, R, A
// bytes with straight alpha, rows stored bottom to top without padding. It
// is the memory layout of a 32bpp BI_RGB DIB section with positive height.
type Bitmap struct {
	Width, Height int
	Pix           []byte
}

// NewBitmap returns a transparent bitmap of the given size.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 4*width*height),
	}
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int {
	return 4 * b.Width
}

// RowOffset returns the offset in Pix of image row y, counted from the top.
func (b *Bitmap) RowOffset(y int) int {
	return (b.Height - 1 - y) * b.Stride()
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements the image.Image interface, with y growing downwards.
func (b *Bitmap) At(x, y int) color.Color {
	if x < 0 || b.Width <= x || y < 0 || b.Height <= y {
		return color.NRGBA{}
	}
	i := b.RowOffset(y) + 4*x
	return color.NRGBA{R: b.Pix[i+2], G: b.Pix[i+1], B: b.Pix[i+0], A: b.Pix[i+3]}
}

// ToNRGBA returns a top-down copy of b.
func (b *Bitmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		s := b.Pix[b.RowOffset(y):]
		d := img.Pix[y*img.Stride:]
		for i := 0; i < 4*b.Width; i += 4 {
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = s[i+3]
		}
	}
	return img
}

// FromImage wraps the pixels of img in a top-down Buffer. *image.RGBA and
// *image.NRGBA are wrapped without copying; other images are first drawn
// into a new *image.NRGBA.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf := &Buffer{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	if bounds.Empty() {
		return buf, ErrDegenerate
	}

	switch m := img.(type) {
	case *image.RGBA:
		buf.Layout = PremultipliedRGBA
		buf.Stride = m.Stride
		buf.Pix = m.Pix[m.PixOffset(bounds.Min.X, bounds.Min.Y):]
	case *image.NRGBA:
		buf.Layout = StraightRGBA
		buf.Stride = m.Stride
		buf.Pix = m.Pix[m.PixOffset(bounds.Min.X, bounds.Min.Y):]
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		buf.Layout = StraightRGBA
		buf.Stride = dst.Stride
		buf.Pix = dst.Pix
	}
	return buf, buf.Validate()
}
