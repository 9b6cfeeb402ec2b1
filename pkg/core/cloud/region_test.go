package cloud

import (
	"math"
	"testing"
)

func TestRegionClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Region
		want Region
	}{
		{"normal", Region{Width: 800, Height: 600, Padding: 10}, Region{Width: 800, Height: 600, Padding: 10}},
		{"zero", Region{}, Region{Width: 1, Height: 1}},
		{"negative", Region{Width: -5, Height: 40, Padding: -2}, Region{Width: 1, Height: 40}},
		{"nan", Region{Width: math.NaN(), Height: 10, Padding: math.NaN()}, Region{Width: 1, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRegionMinDimCenter(t *testing.T) {
	r := Region{Width: 800, Height: 600}
	if got := r.MinDim(); got != 600 {
		t.Errorf("MinDim = %v", got)
	}
	if x, y := r.Center(); x != 400 || y != 300 {
		t.Errorf("Center = (%v, %v)", x, y)
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{CX: 0, CY: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same", a, true},
		{"partial", Box{CX: 5, CY: 5, W: 10, H: 10}, true},
		{"touching edge", Box{CX: 10, CY: 0, W: 10, H: 10}, false},
		{"apart on x", Box{CX: 20, CY: 0, W: 10, H: 10}, false},
		{"overlap x only", Box{CX: 2, CY: 30, W: 10, H: 10}, false},
		{"contained", Box{CX: 1, CY: 1, W: 2, H: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxExpand(t *testing.T) {
	a := Box{CX: 0, CY: 0, W: 10, H: 10}
	b := Box{CX: 12, CY: 0, W: 10, H: 10}
	if a.Overlaps(b) {
		t.Fatal("boxes should be apart before expanding")
	}
	if !a.Expand(2).Overlaps(b.Expand(2)) {
		t.Error("expanded boxes should overlap")
	}
	if got := a.Expand(3); got.W != 16 || got.H != 16 || got.CX != 0 {
		t.Errorf("Expand = %+v", got)
	}
}

func TestBoxWithin(t *testing.T) {
	b := Box{CX: 50, CY: 50, W: 20, H: 10}
	if !b.Within(40, 45, 60, 55, 0) {
		t.Error("exact fit should be within")
	}
	if b.Within(41, 45, 60, 55, 0) {
		t.Error("box crosses minX")
	}
	if !b.Within(40.0000001, 45, 60, 55, 1e-6) {
		t.Error("eps should absorb rounding")
	}
}
