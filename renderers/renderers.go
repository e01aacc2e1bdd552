package renderers

import (
	"fmt"
	"image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/pixel"
	"github.com/putara/thumpsvg/renderers/oksvg"
	"github.com/putara/thumpsvg/renderers/rasterizer"
	"golang.org/x/image/tiff"
)

// Default is the backend used when none is configured.
const Default = oksvg.Name

var backends = map[string]func() thumpsvg.Backend{
	oksvg.Name: func() thumpsvg.Backend {
		return oksvg.New(nil)
	},
	rasterizer.Name: func() thumpsvg.Backend {
		return rasterizer.New(nil)
	},
}

// New returns the backend registered under name, or the default backend if
// name is empty.
func New(name string) (thumpsvg.Backend, error) {
	if name == "" {
		name = Default
	}
	if f, ok := backends[strings.ToLower(name)]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown backend: %v", name)
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Options struct {
	JPG  *jpeg.Options
	GIF  *gif.Options
	TIFF *tiff.Options
}

// Writer returns the encoder for the extension of filename.
func Writer(filename string, opts ...interface{}) (pixel.Writer, error) {
	options := Options{}
	for _, opt := range opts {
		switch o := opt.(type) {
		case *jpeg.Options:
			options.JPG = o
		case *gif.Options:
			options.GIF = o
		case *tiff.Options:
			options.TIFF = o
		default:
			return nil, fmt.Errorf("unknown option: %v", opt)
		}
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return pixel.PNGWriter(), nil
	case ".bmp":
		return pixel.BMPWriter(), nil
	case ".jpg", ".jpeg":
		return pixel.JPGWriter(options.JPG), nil
	case ".gif":
		return pixel.GIFWriter(options.GIF), nil
	case ".tif", ".tiff":
		return pixel.TIFFWriter(options.TIFF), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %v", ext)
	}
}

// Write encodes bmp to filename in the format given by its extension.
func Write(filename string, bmp *pixel.Bitmap, opts ...interface{}) error {
	w, err := Writer(filename, opts...)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := w(f, bmp); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
