package cloud

import (
	"fmt"
	"math"
	"strings"
)

// SizeCategory is a symbolic font size. The pixel size each category maps to is
// supplied by the host (see the sizes subpackage).
type SizeCategory string

// Size categories from smallest to largest.
const (
	SizeSM   SizeCategory = "sm"
	SizeBase SizeCategory = "base"
	SizeLG   SizeCategory = "lg"
	SizeXL   SizeCategory = "xl"
	Size2XL  SizeCategory = "2xl"
	Size3XL  SizeCategory = "3xl"
	Size4XL  SizeCategory = "4xl"
	Size5XL  SizeCategory = "5xl"
)

// Categories lists every size category in ascending order.
var Categories = []SizeCategory{SizeSM, SizeBase, SizeLG, SizeXL, Size2XL, Size3XL, Size4XL, Size5XL}

// Rank returns the position of c in [Categories]. Unknown categories rank as
// [SizeBase].
func (c SizeCategory) Rank() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return 1
}

// Valid reports whether c is one of the known categories.
func (c SizeCategory) Valid() bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// ParseSizeCategory normalizes s into a category. Empty or unknown input
// resolves to [SizeBase].
func ParseSizeCategory(s string) SizeCategory {
	c := SizeCategory(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return SizeBase
}

// Token is a piece of text to place. FontSizePx is filled in from the size
// category before measurement and is not changed afterwards.
type Token struct {
	Text       string       `json:"text"`
	Size       SizeCategory `json:"size"`
	FontSizePx float64      `json:"font_size_px,omitempty"`
}

// Measured is a token together with its rendered bounding box size.
type Measured struct {
	Token
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sanitized returns m with NaN, infinite and negative sizes replaced by 0.
func (m Measured) Sanitized() Measured {
	m.Width = finiteSize(m.Width)
	m.Height = finiteSize(m.Height)
	return m
}

func finiteSize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Placed is a measured token with its centre position in region coordinates.
//
// Angle is the spiral parameter the token was placed at and Rotation the text
// rotation in radians; both are zero for the scatter strategy. Fallback marks
// scatter tokens that could not find a collision-free spot.
type Placed struct {
	Measured
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
	Fallback bool    `json:"fallback,omitempty"`
}

// Box returns the axis-aligned box of the placed token, ignoring rotation.
func (p Placed) Box() Box {
	return Box{CX: p.X, CY: p.Y, W: p.Width, H: p.Height}
}

// Result is the output of one layout pass.
type Result struct {
	Strategy string   `json:"strategy"`
	Region   Region   `json:"region"`
	Tokens   []Placed `json:"tokens"`

	// Complete is false when at least one token was placed on a best-effort
	// path (scatter fallback or spiral search cap).
	Complete bool `json:"complete"`
}

// FallbackCount returns the number of tokens placed on the scatter fallback path.
func (r Result) FallbackCount() int {
	n := 0
	for _, t := range r.Tokens {
		if t.Fallback {
			n++
		}
	}
	return n
}

// Strategy places measured tokens inside a region.
type Strategy interface {
	Name() string
	Place(tokens []Measured, region Region) Result
}

// Strategy names.
const (
	StrategySpiral  = "spiral"
	StrategyScatter = "scatter"
)

// ValidateStrategy checks that name is a known strategy.
func ValidateStrategy(name string) error {
	switch name {
	case StrategySpiral, StrategyScatter:
		return nil
	}
	return fmt.Errorf("invalid strategy: %q (must be one of: spiral, scatter)", name)
}
