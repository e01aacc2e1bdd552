package rasterizer

import (
	"image"
	"image/color"
	"testing"

	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/fit"
	"github.com/putara/thumpsvg/pixel"
	"github.com/putara/thumpsvg/renderers/oksvg"
	"github.com/tdewolff/test"
)

const halfBlue = `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="10"><rect width="10" height="10" fill="blue" fill-opacity="0.5"/></svg>`

func TestRasterize(t *testing.T) {
	doc, err := New(nil).Parse([]byte(halfBlue))
	test.Error(t, err)
	test.T(t, *doc.Size(), fit.Size{Width: 20, Height: 10})

	res, err := fit.Resolve(fit.Scale(2.0), doc.Size())
	test.Error(t, err)
	buf, err := doc.Rasterize(res)
	test.Error(t, err)
	test.T(t, buf.Layout, pixel.StraightRGBA)
	test.T(t, buf.Width, 40)
	test.T(t, buf.Height, 20)

	bmp, err := pixel.Convert(buf)
	test.Error(t, err)
	c := bmp.At(5, 10).(color.NRGBA)
	test.That(t, 250 <= c.B, c)
	test.That(t, 126 <= c.A && c.A <= 129, c)
	test.T(t, bmp.At(35, 10), color.Color(color.NRGBA{}))
}

func TestBackground(t *testing.T) {
	b := New(&Options{Background: color.White})
	r := thumpsvg.New(b, thumpsvg.DefaultOptions())
	bmp, err := r.Thumbnail([]byte(halfBlue), 20)
	test.Error(t, err)
	test.T(t, bmp.Width, 20)
	test.T(t, bmp.Height, 10)
	test.T(t, bmp.At(15, 5), color.Color(color.NRGBA{255, 255, 255, 255}))

	c := bmp.At(5, 5).(color.NRGBA)
	test.T(t, c.A, uint8(255))
	test.That(t, c.R < 130 && 250 <= c.B, c)
}

func TestDrawWithoutSize(t *testing.T) {
	doc, err := oksvg.Read([]byte(`<svg/>`), false)
	test.Error(t, err)
	test.That(t, doc.Size() == nil)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	Draw(doc, img, 1.0)
	test.T(t, img.At(1, 1), color.Color(color.NRGBA{}))

	_, err = (&Document{doc: doc}).Rasterize(fit.Resolved{Width: 4, Height: 4})
	test.T(t, err, fit.ErrUnresolvable)
}

func TestName(t *testing.T) {
	test.String(t, New(nil).Name(), Name)
}
