package sanitize

import "bytes"

var (
	backgroundImage = []byte("BackgroundImage")
	sourceGraphic   = []byte("SourceGraphic")
)

// filter primitives whose in/in2 attributes may reference BackgroundImage
var deniedTags = [][]byte{
	[]byte("feBlend"),
	[]byte("feComposite"),
	[]byte("feDisplacementMap"),
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func isDeniedTag(name []byte) bool {
	for _, tag := range deniedTags {
		if bytes.Equal(name, tag) {
			return true
		}
	}
	return false
}

func isInputAttr(name []byte) bool {
	return string(name) == "in" || string(name) == "in2"
}

// Patch returns a copy of data in which every in="BackgroundImage" and
// in2="BackgroundImage" attribute of an feBlend, feComposite or
// feDisplacementMap element is rewritten to SourceGraphic. All other bytes
// are copied unchanged, including comments, processing instructions and
// CDATA sections, which the scanner does not interpret. An unterminated tag
// at the end of data is copied verbatim.
//
// The result is never longer than data and has room for one more byte, so
// that callers needing a NUL terminator can append it without reallocating.
func Patch(data []byte) []byte {
	out := make([]byte, 0, len(data)+1)
	inTag := false
	mark := 0
	for i, c := range data {
		if c == '<' && !inTag {
			out = append(out, data[mark:i+1]...)
			mark = i + 1
			inTag = true
		} else if c == '>' && inTag {
			out = patchElement(out, data[mark:i+1])
			mark = i + 1
			inTag = false
		}
	}
	return append(out, data[mark:]...)
}

// patchElement appends the element elem to out, rewriting problematic
// attribute values. elem holds everything after the opening '<' up to and
// including the closing '>'.
func patchElement(out, elem []byte) []byte {
	i := 0
	for i < len(elem) && isSpace(elem[i]) {
		i++
	}
	// end tags, comments, declarations and processing instructions
	if i == len(elem) || elem[i] == '/' || elem[i] == '!' || elem[i] == '?' {
		return append(out, elem...)
	}

	start := i
	for i < len(elem) && !isSpace(elem[i]) && elem[i] != '/' && elem[i] != '>' {
		i++
	}
	if !isDeniedTag(elem[start:i]) {
		return append(out, elem...)
	}

	// copied marks how much of elem has been appended to out
	copied := 0
	for i < len(elem) {
		for i < len(elem) && isSpace(elem[i]) {
			i++
		}
		if i == len(elem) || elem[i] == '/' {
			break
		}

		name := i
		for i < len(elem) && !isSpace(elem[i]) && elem[i] != '=' {
			i++
		}
		target := isInputAttr(elem[name:i])

		// the first quote of either kind opens the value
		for i < len(elem) && elem[i] != '"' && elem[i] != '\'' {
			i++
		}
		if i == len(elem) {
			break
		}
		quote := elem[i]
		i++

		value := i
		for i < len(elem) && elem[i] != quote {
			i++
		}
		end := i
		if i < len(elem) {
			i++
		}

		if target && bytes.Equal(elem[value:end], backgroundImage) {
			out = append(out, elem[copied:value]...)
			out = append(out, sourceGraphic...)
			out = append(out, quote)
			copied = i
		}
	}
	return append(out, elem[copied:]...)
}
