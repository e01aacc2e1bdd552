package sanitize

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/tdewolff/test"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	test.Error(t, err)
	test.Error(t, zw.Close())
	return buf.Bytes()
}

// largeSVG returns a document large enough to span several deflate blocks.
func largeSVG() []byte {
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="1000">`)
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="#%06x"/>`+"\n", i%997, i%991, i%13+1, i%17+1, i*7919%0xffffff)
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}

func TestIsCompressed(t *testing.T) {
	test.That(t, IsCompressed([]byte{0x1f, 0x8b}))
	test.That(t, !IsCompressed([]byte{0x1f}))
	test.That(t, !IsCompressed([]byte{0x8b, 0x1f}))
	test.That(t, !IsCompressed(nil))
}

func TestDecompress(t *testing.T) {
	svg := []byte(`<svg><feBlend in="BackgroundImage"/></svg>`)
	out, err := Decompress(compress(t, svg), DefaultOptions())
	test.Error(t, err)
	test.String(t, string(out), string(svg))

	big := largeSVG()
	out, err = Decompress(compress(t, big), DefaultOptions())
	test.Error(t, err)
	test.That(t, bytes.Equal(out, big), "large document round trip")
}

func TestDecompressNotCompressed(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {0x1f}, []byte("<svg/>")} {
		out, err := Decompress(data, DefaultOptions())
		test.That(t, errors.Is(err, ErrNotCompressed), "expected ErrNotCompressed for", data)
		test.That(t, out == nil)
	}
}

func TestDecompressBadStream(t *testing.T) {
	// valid magic, bad compression method
	_, err := Decompress([]byte{0x1f, 0x8b, 0x07, 0, 0, 0, 0, 0, 0, 0xff}, DefaultOptions())
	test.That(t, errors.Is(err, ErrDecompress), err)

	// valid header, reserved deflate block type before any output
	_, err = Decompress([]byte{0x1f, 0x8b, 0x08, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 0xff}, DefaultOptions())
	test.That(t, errors.Is(err, ErrDecompress), err)

	// header only
	_, err = Decompress([]byte{0x1f, 0x8b}, DefaultOptions())
	test.That(t, errors.Is(err, ErrDecompress), err)
}

func TestDecompressTruncated(t *testing.T) {
	big := largeSVG()
	z := compress(t, big)
	out, err := Decompress(z[:len(z)*3/4], DefaultOptions())
	test.Error(t, err)
	test.That(t, 0 < len(out), "partial output")
	test.That(t, len(out) < len(big), "output is partial")
	test.That(t, bytes.HasPrefix(big, out), "partial output is a prefix")
}

func TestDecompressCorrupt(t *testing.T) {
	big := largeSVG()
	z := compress(t, big)
	z[len(z)*9/10] ^= 0x55
	out, err := Decompress(z, DefaultOptions())
	test.Error(t, err)
	test.That(t, chunkSize <= len(out), "at least one chunk of output")
	test.That(t, bytes.Equal(out[:chunkSize], big[:chunkSize]), "leading output is intact")
}

func TestDecompressLimits(t *testing.T) {
	z := compress(t, largeSVG())

	_, err := Decompress(z, Options{MaxOutput: 4096})
	test.That(t, errors.Is(err, ErrTooLarge), err)

	_, err = Decompress(z, Options{MaxInput: int64(len(z) - 1)})
	test.That(t, errors.Is(err, ErrTooLarge), err)

	out, err := Decompress(z, Options{})
	test.Error(t, err)
	test.That(t, 0 < len(out))
}

func TestRun(t *testing.T) {
	svg := `<svg><filter><feComposite in="BackgroundImage"/></filter></svg>`
	expected := `<svg><filter><feComposite in="SourceGraphic"/></filter></svg>`

	out, err := Run([]byte(svg), DefaultOptions())
	test.Error(t, err)
	test.String(t, string(out), expected)

	out, err = Run(compress(t, []byte(svg)), DefaultOptions())
	test.Error(t, err)
	test.String(t, string(out), expected)

	// undecodable gzip falls back to patching the raw bytes
	bad := []byte{0x1f, 0x8b, 0x08, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 0xff}
	out, err = Run(bad, DefaultOptions())
	test.Error(t, err)
	test.That(t, bytes.Equal(out, bad))

	_, err = Run([]byte(svg), Options{MaxInput: 8})
	test.That(t, errors.Is(err, ErrTooLarge), err)

	_, err = Run(compress(t, largeSVG()), Options{MaxOutput: 1024})
	test.That(t, errors.Is(err, ErrTooLarge), err)
}
