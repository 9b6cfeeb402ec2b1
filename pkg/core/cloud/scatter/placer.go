package scatter

import (
	"math"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/lowdisc"
)

// GoldenAngle is π(3−√5), the irrational turn that spreads successive probe
// points most evenly.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// Defaults for [Options].
const (
	DefaultPaddingFraction = 0.08
	DefaultPaddingCap      = 60.0
	DefaultGapFraction     = 0.02
	DefaultGapCap          = 18.0
	DefaultJitterFraction  = 0.08
	DefaultProbeSteps      = 520
	DefaultProbeRadiusStep = 4.0
)

// Hash offsets for the per-token jitter and start angle.
const (
	saltJitterX = 17
	saltJitterY = 29
	saltAngle   = 43
)

// Options tunes the scatter placer. Zero fields take their defaults.
type Options struct {
	PaddingFraction float64 `toml:"padding_fraction" json:"padding_fraction,omitempty"`
	PaddingCap      float64 `toml:"padding_cap" json:"padding_cap,omitempty"`
	GapFraction     float64 `toml:"gap_fraction" json:"gap_fraction,omitempty"`
	GapCap          float64 `toml:"gap_cap" json:"gap_cap,omitempty"`
	JitterFraction  float64 `toml:"jitter_fraction" json:"jitter_fraction,omitempty"`
	ProbeSteps      int     `toml:"probe_steps" json:"probe_steps,omitempty"`
	ProbeRadiusStep float64 `toml:"probe_radius_step" json:"probe_radius_step,omitempty"`
}

// DefaultOptions returns the default scatter options.
func DefaultOptions() Options {
	return Options{
		PaddingFraction: DefaultPaddingFraction,
		PaddingCap:      DefaultPaddingCap,
		GapFraction:     DefaultGapFraction,
		GapCap:          DefaultGapCap,
		JitterFraction:  DefaultJitterFraction,
		ProbeSteps:      DefaultProbeSteps,
		ProbeRadiusStep: DefaultProbeRadiusStep,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PaddingFraction <= 0 {
		o.PaddingFraction = d.PaddingFraction
	}
	if o.PaddingCap <= 0 {
		o.PaddingCap = d.PaddingCap
	}
	if o.GapFraction <= 0 {
		o.GapFraction = d.GapFraction
	}
	if o.GapCap <= 0 {
		o.GapCap = d.GapCap
	}
	if o.JitterFraction <= 0 {
		o.JitterFraction = d.JitterFraction
	}
	if o.ProbeSteps <= 0 {
		o.ProbeSteps = d.ProbeSteps
	}
	if o.ProbeRadiusStep <= 0 {
		o.ProbeRadiusStep = d.ProbeRadiusStep
	}
	return o
}

// Metrics are the region-derived quantities of one pass.
type Metrics struct {
	Pad     float64 // inset from every edge
	Gap     float64 // margin added around every box for collision tests
	Jitter  float64 // full jitter range
	UsableW float64
	UsableH float64
}

// Placer scatters tokens at Halton seeds and resolves collisions by probing.
// The zero value uses defaults.
type Placer struct {
	Options Options
}

// NewPlacer returns a placer with the given options.
func NewPlacer(opts Options) *Placer {
	return &Placer{Options: opts}
}

// Name implements cloud.Strategy.
func (p *Placer) Name() string { return cloud.StrategyScatter }

// Metrics returns the padding, gap and jitter used for region.
func (p *Placer) Metrics(region cloud.Region) Metrics {
	region = region.Clamped()
	opts := p.Options.withDefaults()
	minDim := math.Min(region.Width, region.Height)

	pad := math.Min(opts.PaddingFraction*minDim, opts.PaddingCap)
	if region.Padding > 0 {
		pad = region.Padding
	}
	pad = math.Min(pad, minDim/2)

	return Metrics{
		Pad:     pad,
		Gap:     math.Min(opts.GapFraction*minDim, opts.GapCap),
		Jitter:  opts.JitterFraction * minDim,
		UsableW: region.Width - 2*pad,
		UsableH: region.Height - 2*pad,
	}
}

// Place implements cloud.Strategy. The output is in placement order: largest
// size category first, ties by text.
func (p *Placer) Place(tokens []cloud.Measured, region cloud.Region) cloud.Result {
	region = region.Clamped()
	s := &session{
		region: region,
		opts:   p.Options.withDefaults(),
		m:      p.Metrics(region),
	}

	sorted := cloud.SortForScatter(tokens)
	res := cloud.Result{
		Strategy: cloud.StrategyScatter,
		Region:   region,
		Tokens:   make([]cloud.Placed, 0, len(sorted)),
		Complete: true,
	}
	for i, tok := range sorted {
		placed := s.place(i+1, tok)
		if placed.Fallback {
			res.Complete = false
		}
		res.Tokens = append(res.Tokens, placed)
	}
	return res
}

// session holds the occupancy list of one pass.
type session struct {
	region   cloud.Region
	opts     Options
	m        Metrics
	occupied []cloud.Box
}

func (s *session) place(index int, tok cloud.Measured) cloud.Placed {
	tok = tok.Sanitized()
	h := lowdisc.Hash(tok.Text)

	baseX := s.m.Pad + lowdisc.Halton(index, 2)*s.m.UsableW
	baseY := s.m.Pad + lowdisc.Halton(index, 3)*s.m.UsableH
	baseX += (lowdisc.UnitOffset(h, saltJitterX) - 0.5) * s.m.Jitter
	baseY += (lowdisc.UnitOffset(h, saltJitterY) - 0.5) * s.m.Jitter
	start := lowdisc.UnitOffset(h, saltAngle) * 2 * math.Pi

	for step := 0; step < s.opts.ProbeSteps; step++ {
		angle := start + float64(step)*GoldenAngle
		r := float64(step) * s.opts.ProbeRadiusStep
		box := s.clamp(baseX+r*math.Cos(angle), baseY+r*math.Sin(angle), tok)
		if !s.collides(box) {
			return s.commit(tok, box, false)
		}
	}
	return s.commit(tok, s.clamp(baseX, baseY, tok), true)
}

func (s *session) commit(tok cloud.Measured, box cloud.Box, fallback bool) cloud.Placed {
	s.occupied = append(s.occupied, box)
	return cloud.Placed{Measured: tok, X: box.CX, Y: box.CY, Fallback: fallback}
}

// clamp positions the token's box so it lies inside the padded region. A box
// larger than the usable range on an axis is centred on that axis.
func (s *session) clamp(cx, cy float64, tok cloud.Measured) cloud.Box {
	return cloud.Box{
		CX: clampAxis(cx, tok.Width, s.m.Pad, s.region.Width-s.m.Pad),
		CY: clampAxis(cy, tok.Height, s.m.Pad, s.region.Height-s.m.Pad),
		W:  tok.Width,
		H:  tok.Height,
	}
}

func clampAxis(c, size, lo, hi float64) float64 {
	minC, maxC := lo+size/2, hi-size/2
	if minC > maxC {
		return (lo + hi) / 2
	}
	return math.Max(minC, math.Min(maxC, c))
}

func (s *session) collides(box cloud.Box) bool {
	grown := box.Expand(s.m.Gap)
	for _, o := range s.occupied {
		if grown.Overlaps(o.Expand(s.m.Gap)) {
			return true
		}
	}
	return false
}

var _ cloud.Strategy = (*Placer)(nil)
