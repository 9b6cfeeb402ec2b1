package spiral

import "math"

// Phi is the golden ratio.
var Phi = (1 + math.Sqrt(5)) / 2

// Growth is the golden spiral growth rate b = ln(φ)/(π/2).
var Growth = math.Log(Phi) / (math.Pi / 2)

// Point is a point on the spiral relative to the region centre.
type Point struct {
	X, Y  float64
	R     float64
	Theta float64
}

// Spiral is a logarithmic spiral r(θ) = A·e^(B·θ).
type Spiral struct {
	A       float64 // start radius
	B       float64 // growth rate
	MinStep float64 // maximum angular distance between arc length samples
}

// New returns a golden spiral whose start radius is startFraction of minDim.
func New(minDim, startFraction, minStep float64) Spiral {
	if minStep <= 0 {
		minStep = DefaultMinAngleStep
	}
	return Spiral{A: minDim * startFraction, B: Growth, MinStep: minStep}
}

// Radius returns r(θ).
func (s Spiral) Radius(theta float64) float64 {
	return s.A * math.Exp(s.B*theta)
}

// PointAt returns the point on the spiral at angle theta.
func (s Spiral) PointAt(theta float64) Point {
	r := s.Radius(theta)
	return Point{
		X:     r * math.Cos(theta),
		Y:     r * math.Sin(theta),
		R:     r,
		Theta: theta,
	}
}

// TangentAngleAt approximates the direction of the curve at theta. For the
// golden spiral the true tangent differs from θ+π/2 by a small constant, which
// is ignored.
func (s Spiral) TangentAngleAt(theta float64) float64 {
	return theta + math.Pi/2
}

// ArcLength returns the length of the curve between theta0 and theta1, or 0
// when theta1 <= theta0.
func (s Spiral) ArcLength(theta0, theta1 float64) float64 {
	if !(theta1 > theta0) {
		return 0
	}
	steps := int(math.Ceil((theta1 - theta0) / s.MinStep))
	var length float64
	prev := s.PointAt(theta0)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := s.PointAt(theta0 + (theta1-theta0)*t)
		length += math.Hypot(p.X-prev.X, p.Y-prev.Y)
		prev = p
	}
	return length
}
