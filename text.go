package thumpsvg

import (
	"bytes"
	"regexp"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var utf16Declaration = regexp.MustCompile(`^(\s*<\?xml[^>]*?\sencoding\s*=\s*)(["'])(?i:utf-?16(?:le|be)?|ucs-?2)(["'])`)

// NormalizeText returns data as UTF-8 without a byte order mark. Input
// starting with a UTF-16 byte order mark is transcoded and its XML
// declaration rewritten to match; anything else is returned unchanged, since
// the XML parsers handle declared encodings.
func NormalizeText(data []byte) []byte {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):]
	} else if len(data) < 2 || !(data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF) {
		return data
	}

	// the BOM overrides the default endianness
	dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return data
	}
	return utf16Declaration.ReplaceAll(out, []byte("${1}${2}UTF-8${3}"))
}
