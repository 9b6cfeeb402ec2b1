package metrics

import (
	"fmt"
	"math"
	"slices"
)

// Size is the rendered size of a piece of text in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer reports the rendered size of text at sizePx in the given font
// family. Implementations must be deterministic.
type Measurer interface {
	Measure(text string, sizePx float64, family string) Size
}

// MeasurerFunc adapts a function to [Measurer].
type MeasurerFunc func(text string, sizePx float64, family string) Size

// Measure implements Measurer.
func (f MeasurerFunc) Measure(text string, sizePx float64, family string) Size {
	return f(text, sizePx, family)
}

// Sanitize replaces negative, NaN and infinite dimensions with zero.
func Sanitize(s Size) Size {
	return Size{Width: sanitize(s.Width), Height: sanitize(s.Height)}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Measure calls m and sanitizes the result.
func Measure(m Measurer, text string, sizePx float64, family string) Size {
	return Sanitize(m.Measure(text, sanitize(sizePx), family))
}

// Measurer names accepted by [New].
const (
	NameHeuristic = "heuristic"
	NameOpenType  = "opentype"
	NameShaped    = "shaped"
	NameCanvas    = "canvas"
)

// Names lists every measurer name accepted by [New].
var Names = []string{NameHeuristic, NameOpenType, NameShaped, NameCanvas}

// Validate checks that name is a known measurer.
func Validate(name string) error {
	if slices.Contains(Names, name) {
		return nil
	}
	return fmt.Errorf("invalid measurer: %q (must be one of: heuristic, opentype, shaped, canvas)", name)
}

// New returns the measurer registered under name, loaded with the embedded
// fonts.
func New(name string) (Measurer, error) {
	switch name {
	case NameHeuristic:
		return Heuristic{}, nil
	case NameOpenType:
		return NewOpenType()
	case NameShaped:
		return NewShaped()
	case NameCanvas:
		return NewCanvas()
	}
	return nil, Validate(name)
}
