// Package fit translates a scaling policy and the intrinsic size of a
// document into output pixel dimensions.
//
// Rendering backends have incompatible native fit models: one takes a zoom
// factor, another a target box, another only a uniform scale. Resolve
// computes the geometry once and returns a Param from which every backend
// can reconstruct the same transform.
package fit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxDimension is the largest accepted intrinsic width or height.
	MaxDimension = math.MaxInt32 / 2

	// MaxBytes is the largest accepted 32bpp bitmap size.
	MaxBytes = math.MaxInt32
)

var (
	// ErrUnresolvable is returned when the intrinsic size is unknown or not positive.
	ErrUnresolvable = errors.New("unresolvable fit")

	// ErrTooLarge is returned when the intrinsic, requested or resulting size is too large to allocate.
	ErrTooLarge = errors.New("size too large")
)

// Size is the untransformed size of a document in pixels.
type Size struct {
	Width, Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Mode selects a scaling policy.
type Mode int

// see Mode
const (
	ModeScale Mode = iota
	ModeContain
	ModeCover
)

func (m Mode) String() string {
	switch m {
	case ModeScale:
		return "scale"
	case ModeContain:
		return "contain"
	case ModeCover:
		return "cover"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Policy is a scaling policy. Only the fields of the active mode are used.
type Policy struct {
	Mode          Mode
	Factor        float64 // ModeScale
	Width, Height uint32  // ModeContain and ModeCover
}

// Scale zooms the document by factor. A factor of zero or less, or of
// exactly one, renders the document at its intrinsic size.
func Scale(factor float64) Policy {
	return Policy{Mode: ModeScale, Factor: factor}
}

// Contain fits the whole document inside a width by height box.
func Contain(width, height uint32) Policy {
	return Policy{Mode: ModeContain, Width: width, Height: height}
}

// Cover scales the document so that it covers a width by height box.
func Cover(width, height uint32) Policy {
	return Policy{Mode: ModeCover, Width: width, Height: height}
}

func (p Policy) String() string {
	if p.Mode == ModeScale {
		return "scale:" + strconv.FormatFloat(p.Factor, 'g', -1, 64)
	}
	return fmt.Sprintf("%v:%dx%d", p.Mode, p.Width, p.Height)
}

// ParsePolicy parses the String form of a policy, such as "scale:1.5",
// "contain:256x256" or "cover:64x48". A bare box "64x48" means contain.
func ParsePolicy(s string) (Policy, error) {
	mode, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		mode, arg = "contain", mode
	}
	switch strings.ToLower(mode) {
	case "scale", "zoom":
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Policy{}, errors.Wrapf(err, "bad scale factor %q", arg)
		}
		return Scale(f), nil
	case "contain", "cover":
		ws, hs, ok := strings.Cut(strings.ToLower(arg), "x")
		if !ok {
			return Policy{}, errors.Errorf("bad box %q: expected WIDTHxHEIGHT", arg)
		}
		w, err := strconv.ParseUint(ws, 10, 32)
		if err != nil {
			return Policy{}, errors.Wrapf(err, "bad box width %q", ws)
		}
		h, err := strconv.ParseUint(hs, 10, 32)
		if err != nil {
			return Policy{}, errors.Wrapf(err, "bad box height %q", hs)
		}
		if strings.EqualFold(mode, "cover") {
			return Cover(uint32(w), uint32(h)), nil
		}
		return Contain(uint32(w), uint32(h)), nil
	}
	return Policy{}, errors.Errorf("unknown fit mode %q", mode)
}

// ParamKind tells a backend how to drive its rasterizer.
type ParamKind int

// see ParamKind
const (
	Original  ParamKind = iota // intrinsic size, no scaling
	Zoom                       // uniform zoom by Value
	PinWidth                   // width pinned to Value pixels, height follows the aspect ratio
	PinHeight                  // height pinned to Value pixels, width follows the aspect ratio
)

func (k ParamKind) String() string {
	switch k {
	case Original:
		return "Original"
	case Zoom:
		return "Zoom"
	case PinWidth:
		return "PinWidth"
	case PinHeight:
		return "PinHeight"
	}
	return "ParamKind(" + strconv.Itoa(int(k)) + ")"
}

// Param is the backend-specific part of a resolved fit.
type Param struct {
	Kind  ParamKind
	Value float64
}

func (p Param) String() string {
	if p.Kind == Original {
		return p.Kind.String()
	}
	return fmt.Sprintf("%v(%g)", p.Kind, p.Value)
}

// Scale returns the uniform scale factor that maps a document of the given
// intrinsic size onto the output, for backends that only take a scale.
func (p Param) Scale(size Size) float64 {
	switch p.Kind {
	case Zoom:
		return p.Value
	case PinWidth:
		return p.Value / size.Width
	case PinHeight:
		return p.Value / size.Height
	}
	return 1.0
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	Width, Height int
	Param         Param
}

// Empty reports whether the output has no pixels. Such a result is valid
// but must not be rasterized.
func (r Resolved) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

func (r Resolved) String() string {
	return fmt.Sprintf("%dx%d %v", r.Width, r.Height, r.Param)
}

// Resolve computes the output dimensions of a document with the given
// intrinsic size under policy p. A nil size means the document has no known
// size.
//
// Contain and Cover pin one axis to the requested box and derive the other
// from the aspect ratio: Contain pins the axis with the smaller scale, Cover
// the one with the larger scale, and ties pin the width. A box with a zero
// side degrades to the intrinsic size.
func Resolve(p Policy, size *Size) (Resolved, error) {
	if size == nil || !(0.0 < size.Width) || !(0.0 < size.Height) {
		return Resolved{}, ErrUnresolvable
	} else if MaxDimension < size.Width || MaxDimension < size.Height {
		return Resolved{}, errors.Wrapf(ErrTooLarge, "intrinsic size %v", *size)
	}

	switch p.Mode {
	case ModeContain, ModeCover:
		if p.Width == 0 || p.Height == 0 {
			return original(*size)
		} else if MaxBytes/4/uint64(p.Height) < uint64(p.Width) {
			return Resolved{}, errors.Wrapf(ErrTooLarge, "box %dx%d", p.Width, p.Height)
		}

		w, h := float64(p.Width), float64(p.Height)
		scaleX := w / size.Width
		scaleY := h / size.Height
		pinWidth := scaleX <= scaleY
		if p.Mode == ModeCover {
			pinWidth = scaleY <= scaleX
		}
		if pinWidth {
			return checked(w, math.Round(size.Height*scaleX), Param{PinWidth, w})
		}
		return checked(math.Round(size.Width*scaleY), h, Param{PinHeight, h})
	case ModeScale:
		if !(0.0 < p.Factor) || p.Factor == 1.0 {
			return original(*size)
		}
		return checked(math.Floor(size.Width*p.Factor), math.Floor(size.Height*p.Factor), Param{Zoom, p.Factor})
	}
	return Resolved{}, errors.Errorf("unknown fit mode %v", p.Mode)
}

func original(size Size) (Resolved, error) {
	return checked(math.Floor(size.Width), math.Floor(size.Height), Param{Original, 1.0})
}

func checked(w, h float64, param Param) (Resolved, error) {
	if !(w < MaxBytes) || !(h < MaxBytes) || MaxBytes < 4*w*h {
		return Resolved{}, errors.Wrapf(ErrTooLarge, "output %gx%g", w, h)
	}
	return Resolved{
		Width:  int(w),
		Height: int(h),
		Param:  param,
	}, nil
}
