package lowdisc

import (
	"math"
	"testing"
)

func TestHashKnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"a", 0xe40c292c},
		{"foobar", 0xbf9cf968},
	}
	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestHashStable(t *testing.T) {
	first := Hash("REACT")
	for i := 0; i < 10; i++ {
		if got := Hash("REACT"); got != first {
			t.Fatalf("Hash not stable: %d vs %d", got, first)
		}
	}
	if Hash("REACT") == Hash("react") {
		t.Error("Hash should be case sensitive")
	}
}

func TestHashUsesCodeUnits(t *testing.T) {
	// A rune outside the BMP encodes to a surrogate pair, so it must hash
	// differently from its UTF-8 byte sequence.
	s := "\U0001F680"
	h := offset32
	for _, b := range []byte(s) {
		h ^= uint32(b)
		h *= prime32
	}
	if Hash(s) == h {
		t.Error("Hash should iterate UTF-16 code units, not UTF-8 bytes")
	}
}

func TestUnitRange(t *testing.T) {
	for _, n := range []uint32{0, 1, 17, 1 << 31, math.MaxUint32 - 1, math.MaxUint32} {
		u := Unit(n)
		if u < 0 || u >= 1 {
			t.Errorf("Unit(%d) = %v, want in [0,1)", n, u)
		}
	}
	if Unit(math.MaxUint32) != 0 {
		t.Errorf("Unit(MaxUint32) = %v, want 0", Unit(math.MaxUint32))
	}
}

func TestHalton(t *testing.T) {
	tests := []struct {
		i, base int
		want    float64
	}{
		{1, 2, 0.5},
		{2, 2, 0.25},
		{3, 2, 0.75},
		{4, 2, 0.125},
		{1, 3, 1.0 / 3},
		{2, 3, 2.0 / 3},
		{3, 3, 1.0 / 9},
		{0, 2, 0},
		{5, 1, 0},
	}
	for _, tt := range tests {
		if got := Halton(tt.i, tt.base); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Halton(%d, %d) = %v, want %v", tt.i, tt.base, got, tt.want)
		}
	}
}

func TestHaltonInUnitInterval(t *testing.T) {
	for i := 1; i < 2000; i++ {
		for _, b := range []int{2, 3, 5} {
			v := Halton(i, b)
			if v <= 0 || v >= 1 {
				t.Fatalf("Halton(%d, %d) = %v, want in (0,1)", i, b, v)
			}
		}
	}
}

func TestUnitOffsetDoesNotWrap(t *testing.T) {
	tests := []struct {
		h    uint32
		off  uint64
		want float64
	}{
		{0, 17, 17.0 / unitModulus},
		{12345, 0, Unit(12345)},
		{math.MaxUint32 - 5, 17, 12.0 / unitModulus},
		{math.MaxUint32, 43, 43.0 / unitModulus},
	}
	for _, tt := range tests {
		if got := UnitOffset(tt.h, tt.off); got != tt.want {
			t.Errorf("UnitOffset(%d, %d) = %v, want %v", tt.h, tt.off, got, tt.want)
		}
	}
	var h uint32 = math.MaxUint32 - 5
	if UnitOffset(h, 17) == Unit(h+17) {
		t.Error("UnitOffset should add before truncating to 32 bits")
	}
}
