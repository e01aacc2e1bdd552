package thumpsvg

import (
	"github.com/pkg/errors"
	"github.com/putara/thumpsvg/fit"
	"github.com/putara/thumpsvg/pixel"
	"github.com/putara/thumpsvg/probe"
	"github.com/putara/thumpsvg/sanitize"
)

// Kind is the failure category reported to the host of the pipeline.
type Kind int

// see Classify
const (
	NoError Kind = iota
	AllocationFailure
	DecompressionFailure
	UnresolvableFit
	DegenerateDimensions
	InvalidInput
	RenderFailure
)

func (k Kind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case AllocationFailure:
		return "AllocationFailure"
	case DecompressionFailure:
		return "DecompressionFailure"
	case UnresolvableFit:
		return "UnresolvableFit"
	case DegenerateDimensions:
		return "DegenerateDimensions"
	case InvalidInput:
		return "InvalidInput"
	case RenderFailure:
		return "RenderFailure"
	}
	return "Kind(?)"
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInputTooLarge, AllocationFailure},
	{sanitize.ErrTooLarge, AllocationFailure},
	{fit.ErrTooLarge, AllocationFailure},
	{pixel.ErrTooLarge, AllocationFailure},
	{sanitize.ErrDecompress, DecompressionFailure},
	{fit.ErrUnresolvable, UnresolvableFit},
	{pixel.ErrDegenerate, DegenerateDimensions},
	{ErrInvalidArgument, InvalidInput},
	{ErrEmptyInput, InvalidInput},
	{probe.ErrNoSVG, InvalidInput},
	{pixel.ErrInvalidBuffer, RenderFailure},
}

// Classify returns the failure category of err. Errors that match none of
// the package sentinels are render failures.
func Classify(err error) Kind {
	if err == nil {
		return NoError
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return RenderFailure
}
