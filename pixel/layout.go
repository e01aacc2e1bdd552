// Package pixel converts raw rasterizer output into the canonical bitmap
// layout consumed by the Windows shell: bottom-up rows of 32-bit BGRA pixels
// with straight (non-premultiplied) alpha.
package pixel

// Layout is the byte order and alpha convention of a source buffer.
type Layout uint8

const (
	// StraightRGBA stores R, G, B, A bytes with straight alpha.
	StraightRGBA Layout = iota

	// StraightBGRA stores B, G, R, A bytes with straight alpha.
	StraightBGRA

	// PremultipliedRGBA stores R, G, B, A bytes with color scaled by alpha.
	PremultipliedRGBA

	// PremultipliedBGRA stores B, G, R, A bytes with color scaled by alpha.
	PremultipliedBGRA

	layoutCount
)

// LayoutInfo describes a Layout.
type LayoutInfo struct {
	// Premultiplied indicates color channels are scaled by alpha.
	Premultiplied bool

	// BGR indicates blue is stored first.
	BGR bool

	Name string
}

var layoutInfoTable = [layoutCount]LayoutInfo{
	StraightRGBA:      {Premultiplied: false, BGR: false, Name: "StraightRGBA"},
	StraightBGRA:      {Premultiplied: false, BGR: true, Name: "StraightBGRA"},
	PremultipliedRGBA: {Premultiplied: true, BGR: false, Name: "PremultipliedRGBA"},
	PremultipliedBGRA: {Premultiplied: true, BGR: true, Name: "PremultipliedBGRA"},
}

// Info returns the LayoutInfo for this layout.
func (l Layout) Info() LayoutInfo {
	if !l.IsValid() {
		return LayoutInfo{Name: "Unknown"}
	}
	return layoutInfoTable[l]
}

// IsValid returns true if l is a known layout.
func (l Layout) IsValid() bool {
	return l < layoutCount
}

// IsPremultiplied returns true if color channels are scaled by alpha.
func (l Layout) IsPremultiplied() bool {
	return l.Info().Premultiplied
}

// IsBGR returns true if blue is the first byte of a pixel.
func (l Layout) IsBGR() bool {
	return l.Info().BGR
}

func (l Layout) String() string {
	return l.Info().Name
}
