package sanitize

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	chunkSize          = 2048
	maxInitialCapacity = 16 << 20
)

// IsCompressed reports whether data starts with the gzip magic number.
func IsCompressed(data []byte) bool {
	return 2 <= len(data) && data[0] == 0x1f && data[1] == 0x8b
}

// Decompress inflates gzip compressed data in fixed-size chunks.
//
// It returns ErrNotCompressed when data does not start with the gzip magic
// number. A stream that breaks off after producing output, either because it
// is truncated or because its body or trailer is corrupt, yields the output
// produced so far and no error.
func Decompress(data []byte, opts Options) ([]byte, error) {
	if !IsCompressed(data) {
		return nil, ErrNotCompressed
	} else if opts.inputTooLarge(len(data)) {
		return nil, ErrTooLarge
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrDecompress, "header: %v", err)
	}
	defer zr.Close()

	var buf [chunkSize]byte
	out := make([]byte, 0, initialCapacity(len(data), opts))
	for {
		n, err := zr.Read(buf[:])
		if 0 < n {
			if opts.outputTooLarge(len(out) + n) {
				return nil, ErrTooLarge
			}
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			if 0 < len(out) {
				return out, nil
			}
			return nil, errors.Wrapf(ErrDecompress, "inflate: %v", err)
		}
	}
}

// initialCapacity guesses the inflated size from a typical compression ratio
// of text, bounded by the output limit.
func initialCapacity(n int, opts Options) int {
	c := 4 * n
	if c < chunkSize {
		c = chunkSize
	} else if maxInitialCapacity < c {
		c = maxInitialCapacity
	}
	if 0 < opts.MaxOutput && opts.MaxOutput < int64(c) {
		c = int(opts.MaxOutput)
	}
	return c
}
