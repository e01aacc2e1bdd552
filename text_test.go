package thumpsvg

import (
	"testing"

	"github.com/tdewolff/test"
)

func utf16le(s string) []byte {
	b := []byte{0xFF, 0xFE}
	for _, r := range s {
		b = append(b, byte(r), byte(r>>8))
	}
	return b
}

func utf16be(s string) []byte {
	b := []byte{0xFE, 0xFF}
	for _, r := range s {
		b = append(b, byte(r>>8), byte(r))
	}
	return b
}

func TestNormalizeText(t *testing.T) {
	var tts = []struct {
		name     string
		data     []byte
		expected string
	}{
		{"utf8", []byte(`<svg/>`), `<svg/>`},
		{"utf8 bom", []byte("\xEF\xBB\xBF<svg/>"), `<svg/>`},
		{"utf16le", utf16le(`<svg width="1é"/>`), `<svg width="1é"/>`},
		{"utf16be", utf16be(`<svg/>`), `<svg/>`},
		{"declaration", utf16le(`<?xml version="1.0" encoding="UTF-16"?><svg/>`), `<?xml version="1.0" encoding="UTF-8"?><svg/>`},
		{"declaration single quotes", utf16be(`<?xml version='1.0' encoding='utf-16le'?><svg/>`), `<?xml version='1.0' encoding='UTF-8'?><svg/>`},
		{"other declaration", utf16le(`<?xml version="1.0" encoding="ISO-8859-1"?>`), `<?xml version="1.0" encoding="ISO-8859-1"?>`},
		{"short", []byte{0xFF}, "\xFF"},
		{"empty", []byte{}, ""},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			test.String(t, string(NormalizeText(tt.data)), tt.expected)
		})
	}
}
