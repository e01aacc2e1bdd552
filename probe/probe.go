// Package probe reads the intrinsic size of an SVG document from the
// attributes of its root element without parsing the drawing itself.
package probe

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/putara/thumpsvg/fit"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

var (
	// ErrNoSVG is returned when the document has no svg root element.
	ErrNoSVG = errors.New("expected svg root element")

	// ErrNoSize is returned when neither width/height nor viewBox give a positive size.
	ErrNoSize = errors.New("no intrinsic size")
)

// Info holds the sizing attributes of the root element. Width and Height are
// in CSS pixels and zero when absent, relative or unparsable.
type Info struct {
	Width, Height float64
	ViewBox       [4]float64 // x, y, width, height
	HasViewBox    bool
}

// Size returns the intrinsic size in CSS pixels. A missing dimension is
// derived from the other one and the viewBox aspect ratio; with neither
// present the viewBox size is used.
func (info Info) Size() (fit.Size, error) {
	w, h := info.Width, info.Height
	vw, vh := info.ViewBox[2], info.ViewBox[3]
	hasAspect := info.HasViewBox && 0.0 < vw && 0.0 < vh
	if 0.0 < w && 0.0 < h {
		return fit.Size{Width: w, Height: h}, nil
	} else if 0.0 < w && hasAspect {
		return fit.Size{Width: w, Height: w * vh / vw}, nil
	} else if 0.0 < h && hasAspect {
		return fit.Size{Width: h * vw / vh, Height: h}, nil
	} else if hasAspect {
		return fit.Size{Width: vw, Height: vh}, nil
	}
	return fit.Size{}, ErrNoSize
}

// Parse lexes data up to the root element and returns its sizing
// attributes. The root element may carry a namespace prefix.
func Parse(data []byte) (Info, error) {
	l := xml.NewLexer(parse.NewInputBytes(data))
	for {
		tt, text := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return Info{}, errors.Wrap(ErrNoSVG, err.Error())
			}
			return Info{}, ErrNoSVG
		case xml.StartTagToken:
			name := string(text[1:])
			if i := strings.IndexByte(name, ':'); i != -1 {
				name = name[i+1:]
			}
			if name != "svg" {
				return Info{}, errors.Wrapf(ErrNoSVG, "root element is %s", name)
			}
			return parseRoot(l), nil
		}
	}
}

// Size returns the intrinsic size of the SVG document in data.
func Size(data []byte) (fit.Size, error) {
	info, err := Parse(data)
	if err != nil {
		return fit.Size{}, err
	}
	return info.Size()
}

func parseRoot(l *xml.Lexer) Info {
	info := Info{}
	for {
		tt, _ := l.Next()
		if tt != xml.AttributeToken {
			break
		}
		val := l.AttrVal()
		if 2 <= len(val) && (val[0] == '"' || val[0] == '\'') {
			val = val[1 : len(val)-1]
		}
		switch string(l.Text()) {
		case "width":
			info.Width = parseLength(string(val))
		case "height":
			info.Height = parseLength(string(val))
		case "viewBox":
			info.ViewBox, info.HasViewBox = parseViewBox(string(val))
		}
	}
	return info
}

// parseLength returns an absolute length in CSS pixels at 96 DPI, or zero
// for relative, negative or malformed lengths.
func parseLength(v string) float64 {
	v = strings.TrimSpace(v)
	nn, _ := parse.Dimension([]byte(v))
	if nn == 0 {
		return 0.0
	}
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil || num <= 0.0 {
		return 0.0
	}

	switch strings.ToLower(v[nn:]) {
	case "", "px":
		return num
	case "pt":
		return num * 96.0 / 72.0
	case "pc":
		return num * 96.0 / 6.0
	case "in":
		return num * 96.0
	case "cm":
		return num * 96.0 / 2.54
	case "mm":
		return num * 96.0 / 25.4
	case "q":
		return num * 96.0 / 101.6
	}
	return 0.0
}

func parseViewBox(v string) ([4]float64, bool) {
	var vb [4]float64
	vals := strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(vals) != 4 {
		return vb, false
	}
	for i, val := range vals {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = f
	}
	return vb, true
}
