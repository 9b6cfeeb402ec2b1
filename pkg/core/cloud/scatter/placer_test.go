package scatter

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

func measured(text string, size cloud.SizeCategory, w, h float64) cloud.Measured {
	return cloud.Measured{Token: cloud.Token{Text: text, Size: size}, Width: w, Height: h}
}

func sampleTokens() []cloud.Measured {
	return []cloud.Measured{
		measured("Go", cloud.Size5XL, 70, 48),
		measured("Kubernetes", cloud.Size3XL, 180, 30),
		measured("Postgres", cloud.SizeXL, 90, 20),
		measured("REACT", cloud.SizeLG, 60, 18),
		measured("gRPC", cloud.SizeBase, 40, 16),
		measured("TypeScript", cloud.Size2XL, 130, 24),
		measured("Redis", cloud.SizeSM, 35, 14),
		measured("Docker", cloud.Size4XL, 150, 36),
	}
}

func TestMetrics(t *testing.T) {
	tests := []struct {
		name   string
		region cloud.Region
		want   Metrics
	}{
		{"800x600", cloud.Region{Width: 800, Height: 600}, Metrics{Pad: 48, Gap: 12, Jitter: 48, UsableW: 704, UsableH: 504}},
		{"capped", cloud.Region{Width: 2000, Height: 1500}, Metrics{Pad: 60, Gap: 18, Jitter: 120, UsableW: 1880, UsableH: 1380}},
		{"explicit padding", cloud.Region{Width: 800, Height: 600, Padding: 10}, Metrics{Pad: 10, Gap: 12, Jitter: 48, UsableW: 780, UsableH: 580}},
		{"degenerate", cloud.Region{Width: 0, Height: -3}, Metrics{Pad: 0.08, Gap: 0.02, Jitter: 0.08, UsableW: 0.84, UsableH: 0.84}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&Placer{}).Metrics(tt.region)
			if !closeMetrics(got, tt.want) {
				t.Errorf("Metrics = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func closeMetrics(a, b Metrics) bool {
	const eps = 1e-9
	return math.Abs(a.Pad-b.Pad) < eps && math.Abs(a.Gap-b.Gap) < eps &&
		math.Abs(a.Jitter-b.Jitter) < eps && math.Abs(a.UsableW-b.UsableW) < eps &&
		math.Abs(a.UsableH-b.UsableH) < eps
}

func TestPlaceEmpty(t *testing.T) {
	res := NewPlacer(Options{}).Place(nil, cloud.Region{Width: 800, Height: 600})
	if len(res.Tokens) != 0 {
		t.Errorf("got %d tokens, want 0", len(res.Tokens))
	}
	if !res.Complete {
		t.Error("empty layout should be complete")
	}
	if res.Strategy != cloud.StrategyScatter {
		t.Errorf("Strategy = %q", res.Strategy)
	}
}

func TestPlaceSingleToken(t *testing.T) {
	region := cloud.Region{Width: 800, Height: 600}
	res := NewPlacer(Options{}).Place([]cloud.Measured{measured("A", cloud.SizeBase, 11, 16)}, region)
	if len(res.Tokens) != 1 {
		t.Fatalf("got %d tokens", len(res.Tokens))
	}
	tok := res.Tokens[0]
	if !tok.Box().Within(48, 48, 752, 552, 1e-9) {
		t.Errorf("box %+v outside padded region", tok.Box())
	}
	if tok.Fallback || !res.Complete {
		t.Error("a single token should never fall back")
	}
	if tok.Rotation != 0 {
		t.Errorf("Rotation = %v, want 0", tok.Rotation)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	region := cloud.Region{Width: 800, Height: 600}
	a := NewPlacer(Options{}).Place(sampleTokens(), region)
	b := NewPlacer(Options{}).Place(sampleTokens(), region)
	if !reflect.DeepEqual(a, b) {
		t.Error("scatter placement is not deterministic")
	}
}

func TestPlaceOrder(t *testing.T) {
	res := NewPlacer(Options{}).Place(sampleTokens(), cloud.Region{Width: 800, Height: 600})
	for i := 1; i < len(res.Tokens); i++ {
		prev, cur := res.Tokens[i-1], res.Tokens[i]
		if prev.Size.Rank() < cur.Size.Rank() {
			t.Errorf("%s (%s) placed before larger %s (%s)", prev.Text, prev.Size, cur.Text, cur.Size)
		}
	}
	if res.Tokens[0].Text != "Go" {
		t.Errorf("first placed = %q, want Go", res.Tokens[0].Text)
	}
}

func TestPlaceContainmentAndSeparation(t *testing.T) {
	regions := []cloud.Region{
		{Width: 800, Height: 600},
		{Width: 1200, Height: 400},
		{Width: 500, Height: 900},
	}
	for _, region := range regions {
		t.Run(fmt.Sprintf("%vx%v", region.Width, region.Height), func(t *testing.T) {
			p := NewPlacer(Options{})
			m := p.Metrics(region)
			res := p.Place(sampleTokens(), region)
			if len(res.Tokens) != len(sampleTokens()) {
				t.Fatalf("got %d tokens", len(res.Tokens))
			}
			for _, tok := range res.Tokens {
				if !tok.Box().Within(m.Pad, m.Pad, region.Width-m.Pad, region.Height-m.Pad, 1e-9) {
					t.Errorf("%s: box %+v outside padded region", tok.Text, tok.Box())
				}
			}
			for i, a := range res.Tokens {
				for _, b := range res.Tokens[i+1:] {
					if a.Fallback || b.Fallback {
						continue
					}
					if a.Box().Expand(m.Gap).Overlaps(b.Box().Expand(m.Gap)) {
						t.Errorf("%s and %s overlap", a.Text, b.Text)
					}
				}
			}
		})
	}
}

func TestPlaceIdenticalTokens(t *testing.T) {
	tokens := []cloud.Measured{
		measured("Go", cloud.SizeBase, 24, 16),
		measured("Go", cloud.SizeBase, 24, 16),
	}
	res := NewPlacer(Options{}).Place(tokens, cloud.Region{Width: 800, Height: 600})
	a, b := res.Tokens[0], res.Tokens[1]
	if a.X == b.X && a.Y == b.Y {
		t.Error("identical tokens placed at the same position")
	}
	if a.Width != b.Width || a.Height != b.Height {
		t.Error("identical tokens should keep identical dimensions")
	}
}

func TestPlaceFallback(t *testing.T) {
	region := cloud.Region{Width: 100, Height: 100}
	var tokens []cloud.Measured
	for i := range 6 {
		tokens = append(tokens, measured(fmt.Sprintf("word%d", i), cloud.SizeBase, 60, 30))
	}
	p := NewPlacer(Options{ProbeSteps: 10})
	m := p.Metrics(region)
	res := p.Place(tokens, region)

	if res.Complete {
		t.Error("crowded layout should be incomplete")
	}
	if res.FallbackCount() == 0 {
		t.Fatal("expected at least one fallback token")
	}
	if res.Tokens[0].Fallback {
		t.Error("first token should always find space")
	}
	for _, tok := range res.Tokens {
		if !tok.Box().Within(m.Pad, m.Pad, region.Width-m.Pad, region.Height-m.Pad, 1e-9) {
			t.Errorf("%s: fallback box %+v escapes padded region", tok.Text, tok.Box())
		}
	}
}

func TestPlaceOversizedTokenCentred(t *testing.T) {
	region := cloud.Region{Width: 200, Height: 200}
	res := NewPlacer(Options{}).Place([]cloud.Measured{measured("Supercalifragilistic", cloud.Size5XL, 400, 20)}, region)
	if got := res.Tokens[0].X; got != 100 {
		t.Errorf("X = %v, want 100 (centred)", got)
	}
}

func TestPlaceNonFiniteSizes(t *testing.T) {
	region := cloud.Region{Width: 800, Height: 600}
	tests := []struct {
		name string
		w, h float64
	}{
		{"nan width", math.NaN(), 20},
		{"inf width", math.Inf(1), 20},
		{"nan height", 40, math.NaN()},
		{"negative", -30, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := append(sampleTokens(), measured("Broken", cloud.SizeLG, tt.w, tt.h))
			res := NewPlacer(Options{}).Place(tokens, region)
			for _, tok := range res.Tokens {
				if math.IsNaN(tok.X) || math.IsInf(tok.X, 0) || math.IsNaN(tok.Y) || math.IsInf(tok.Y, 0) {
					t.Errorf("%s placed at (%v, %v)", tok.Text, tok.X, tok.Y)
				}
				if !finite(tok.Width) || tok.Width < 0 || !finite(tok.Height) || tok.Height < 0 {
					t.Errorf("%s size = %vx%v, want finite and non-negative", tok.Text, tok.Width, tok.Height)
				}
			}
		})
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func TestPlaceDoesNotMutateInput(t *testing.T) {
	tokens := sampleTokens()
	before := append([]cloud.Measured(nil), tokens...)
	NewPlacer(Options{}).Place(tokens, cloud.Region{Width: 800, Height: 600})
	if !reflect.DeepEqual(tokens, before) {
		t.Error("Place mutated its input")
	}
}

func TestClampAxis(t *testing.T) {
	tests := []struct {
		name            string
		c, size, lo, hi float64
		want            float64
	}{
		{"inside", 50, 10, 0, 100, 50},
		{"low", 1, 10, 0, 100, 5},
		{"high", 99, 10, 0, 100, 95},
		{"oversized", 10, 200, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampAxis(tt.c, tt.size, tt.lo, tt.hi); got != tt.want {
				t.Errorf("clampAxis = %v, want %v", got, tt.want)
			}
		})
	}
}
