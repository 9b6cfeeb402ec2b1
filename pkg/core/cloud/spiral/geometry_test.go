package spiral

import (
	"math"
	"testing"
)

func TestGrowthIsGolden(t *testing.T) {
	s := New(600, DefaultStartRadiusFraction, DefaultMinAngleStep)
	ratio := s.Radius(math.Pi/2) / s.Radius(0)
	if math.Abs(ratio-Phi) > 1e-12 {
		t.Errorf("quarter-turn growth = %v, want φ = %v", ratio, Phi)
	}
}

func TestStartRadius(t *testing.T) {
	s := New(600, 0.07, 0.01)
	if math.Abs(s.A-42) > 1e-9 {
		t.Errorf("A = %v, want 42", s.A)
	}
	p := s.PointAt(0)
	if math.Abs(p.X-42) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("PointAt(0) = (%v, %v), want (42, 0)", p.X, p.Y)
	}
}

func TestPointAtPolar(t *testing.T) {
	s := New(400, 0.07, 0.01)
	for _, theta := range []float64{0.3, 1, 2.5, 7} {
		p := s.PointAt(theta)
		if math.Abs(math.Hypot(p.X, p.Y)-p.R) > 1e-9 {
			t.Errorf("PointAt(%v): |(x,y)| = %v, want r = %v", theta, math.Hypot(p.X, p.Y), p.R)
		}
		if p.Theta != theta {
			t.Errorf("PointAt(%v).Theta = %v", theta, p.Theta)
		}
	}
}

func TestTangentAngle(t *testing.T) {
	s := New(100, 0.07, 0.01)
	if got := s.TangentAngleAt(1); math.Abs(got-(1+math.Pi/2)) > 1e-12 {
		t.Errorf("TangentAngleAt(1) = %v", got)
	}
}

func TestArcLengthMonotonic(t *testing.T) {
	s := New(600, 0.07, 0.01)
	prev := 0.0
	for theta := 0.05; theta < 12; theta += 0.37 {
		l := s.ArcLength(0, theta)
		if l <= prev {
			t.Fatalf("ArcLength(0, %v) = %v not greater than previous %v", theta, l, prev)
		}
		prev = l
	}
}

func TestArcLengthDegenerate(t *testing.T) {
	s := New(600, 0.07, 0.01)
	if got := s.ArcLength(1, 1); got != 0 {
		t.Errorf("ArcLength(1, 1) = %v, want 0", got)
	}
	if got := s.ArcLength(2, 1); got != 0 {
		t.Errorf("ArcLength(2, 1) = %v, want 0", got)
	}
}

func TestArcLengthMatchesClosedForm(t *testing.T) {
	// For r = a·e^(bθ) the exact arc length is (√(1+b²)/b)·(r(θ1) − r(θ0)).
	s := New(600, 0.07, 0.01)
	t0, t1 := 0.5, 6.0
	exact := math.Sqrt(1+s.B*s.B) / s.B * (s.Radius(t1) - s.Radius(t0))
	got := s.ArcLength(t0, t1)
	if math.Abs(got-exact)/exact > 1e-3 {
		t.Errorf("ArcLength = %v, closed form = %v", got, exact)
	}
	if got > exact {
		t.Errorf("chord sum %v should not exceed the true length %v", got, exact)
	}
}
