package cloud

import "math"

// MinRegionSize is the smallest usable region dimension in pixels. Degenerate
// regions are clamped to it before paddings and gaps are derived.
const MinRegionSize = 1.0

// Region is the rectangle tokens must stay within. A positive Padding
// overrides the padding a strategy would otherwise derive from the region size.
type Region struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding,omitempty"`
}

// Clamped returns r with both dimensions raised to at least [MinRegionSize].
// NaN dimensions are treated as zero.
func (r Region) Clamped() Region {
	r.Width = clampDim(r.Width)
	r.Height = clampDim(r.Height)
	if math.IsNaN(r.Padding) || r.Padding < 0 {
		r.Padding = 0
	}
	return r
}

func clampDim(v float64) float64 {
	if math.IsNaN(v) || v < MinRegionSize {
		return MinRegionSize
	}
	return v
}

// MinDim returns the smaller dimension of the clamped region.
func (r Region) MinDim() float64 {
	c := r.Clamped()
	return math.Min(c.Width, c.Height)
}

// Center returns the centre point of the clamped region.
func (r Region) Center() (float64, float64) {
	c := r.Clamped()
	return c.Width / 2, c.Height / 2
}

// Box is an axis-aligned rectangle given by its centre and size.
type Box struct {
	CX, CY float64
	W, H   float64
}

// Expand grows the box by gap on every side.
func (b Box) Expand(gap float64) Box {
	b.W += 2 * gap
	b.H += 2 * gap
	return b
}

// Overlaps reports whether b and o overlap on both axes. Touching edges do not
// count as overlap. The test is symmetric.
func (b Box) Overlaps(o Box) bool {
	return math.Abs(b.CX-o.CX)*2 < b.W+o.W &&
		math.Abs(b.CY-o.CY)*2 < b.H+o.H
}

// Within reports whether b lies inside [minX,maxX]×[minY,maxY], allowing for
// eps of floating point slack.
func (b Box) Within(minX, minY, maxX, maxY, eps float64) bool {
	return b.CX-b.W/2 >= minX-eps && b.CX+b.W/2 <= maxX+eps &&
		b.CY-b.H/2 >= minY-eps && b.CY+b.H/2 <= maxY+eps
}
