package pixel

import (
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Writer encodes a bitmap to w.
type Writer func(w io.Writer, b *Bitmap) error

// PNGWriter writes the bitmap as a PNG file.
func PNGWriter() Writer {
	return func(w io.Writer, b *Bitmap) error {
		return png.Encode(w, b.ToNRGBA())
	}
}

// BMPWriter writes the bitmap as a 32bpp BMP file.
func BMPWriter() Writer {
	return func(w io.Writer, b *Bitmap) error {
		return bmp.Encode(w, b.ToNRGBA())
	}
}

// TIFFWriter writes the bitmap as a TIFF file.
func TIFFWriter(opts *tiff.Options) Writer {
	return func(w io.Writer, b *Bitmap) error {
		return tiff.Encode(w, b.ToNRGBA(), opts)
	}
}

// JPGWriter writes the bitmap as a JPG file. Alpha is dropped.
func JPGWriter(opts *jpeg.Options) Writer {
	return func(w io.Writer, b *Bitmap) error {
		return jpeg.Encode(w, b.ToNRGBA(), opts)
	}
}

// GIFWriter writes the bitmap as a GIF file.
func GIFWriter(opts *gif.Options) Writer {
	return func(w io.Writer, b *Bitmap) error {
		return gif.Encode(w, b.ToNRGBA(), opts)
	}
}
