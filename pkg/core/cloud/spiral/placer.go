package spiral

import (
	"math"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

// Defaults for [Options].
const (
	DefaultWordSpacing         = 1.9
	DefaultStartRadiusFraction = 0.07
	DefaultMinAngleStep        = 0.01
	DefaultMaxSearchSteps      = 200

	initialSearchStep = 0.1
	searchStepGrowth  = 1.5
	bisectRounds      = 10
)

// Options tunes the spiral placer. Zero fields take their defaults.
type Options struct {
	// WordSpacing multiplies a token's width to get the arc length it claims.
	WordSpacing float64 `toml:"word_spacing" json:"word_spacing,omitempty"`

	// StartRadiusFraction is the spiral start radius as a fraction of the
	// region's smaller dimension.
	StartRadiusFraction float64 `toml:"start_radius_fraction" json:"start_radius_fraction,omitempty"`

	// MinAngleStep is the arc length sampling step in radians.
	MinAngleStep float64 `toml:"min_angle_step" json:"min_angle_step,omitempty"`

	// MaxSearchSteps caps the angle growth loop per token.
	MaxSearchSteps int `toml:"max_search_steps" json:"max_search_steps,omitempty"`
}

// DefaultOptions returns the default spiral options.
func DefaultOptions() Options {
	return Options{
		WordSpacing:         DefaultWordSpacing,
		StartRadiusFraction: DefaultStartRadiusFraction,
		MinAngleStep:        DefaultMinAngleStep,
		MaxSearchSteps:      DefaultMaxSearchSteps,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WordSpacing <= 0 {
		o.WordSpacing = d.WordSpacing
	}
	if o.StartRadiusFraction <= 0 {
		o.StartRadiusFraction = d.StartRadiusFraction
	}
	if o.MinAngleStep <= 0 {
		o.MinAngleStep = d.MinAngleStep
	}
	if o.MaxSearchSteps <= 0 {
		o.MaxSearchSteps = d.MaxSearchSteps
	}
	return o
}

// Placer lays tokens out along a golden spiral. The zero value uses defaults.
type Placer struct {
	Options Options
}

// NewPlacer returns a placer with the given options.
func NewPlacer(opts Options) *Placer {
	return &Placer{Options: opts}
}

// Name implements cloud.Strategy.
func (p *Placer) Name() string { return cloud.StrategySpiral }

// Geometry returns the spiral used for region.
func (p *Placer) Geometry(region cloud.Region) Spiral {
	opts := p.Options.withDefaults()
	return New(region.MinDim(), opts.StartRadiusFraction, opts.MinAngleStep)
}

// Place implements cloud.Strategy. Tokens are placed in input order and the
// input slice is not modified.
func (p *Placer) Place(tokens []cloud.Measured, region cloud.Region) cloud.Result {
	region = region.Clamped()
	opts := p.Options.withDefaults()
	s := p.newSession(region, opts)

	res := cloud.Result{
		Strategy: cloud.StrategySpiral,
		Region:   region,
		Tokens:   make([]cloud.Placed, 0, len(tokens)),
		Complete: true,
	}
	for _, tok := range tokens {
		placed, ok := s.place(tok)
		if !ok {
			res.Complete = false
		}
		res.Tokens = append(res.Tokens, placed)
	}
	return res
}

// session holds the state of one placement pass.
type session struct {
	spiral  Spiral
	opts    Options
	cx, cy  float64
	current float64
}

func (p *Placer) newSession(region cloud.Region, opts Options) *session {
	cx, cy := region.Center()
	return &session{
		spiral: New(region.MinDim(), opts.StartRadiusFraction, opts.MinAngleStep),
		opts:   opts,
		cx:     cx,
		cy:     cy,
	}
}

func (s *session) place(tok cloud.Measured) (cloud.Placed, bool) {
	tok = tok.Sanitized()
	theta, ok := s.findAngle(s.current, tok.Width*s.opts.WordSpacing)
	pt := s.spiral.PointAt(theta)
	s.current = theta
	return cloud.Placed{
		Measured: tok,
		X:        s.cx + pt.X,
		Y:        s.cy + pt.Y,
		Rotation: s.spiral.TangentAngleAt(theta) + math.Pi/2,
		Angle:    theta,
	}, ok
}

// findAngle returns the smallest angle after start whose arc from start is at
// least required. ok is false when the search cap was hit, in which case the
// furthest angle reached is returned.
func (s *session) findAngle(start, required float64) (float64, bool) {
	lo := start
	step := initialSearchStep
	for i := 0; i < s.opts.MaxSearchSteps; i++ {
		hi := lo + step
		arc := s.spiral.ArcLength(start, hi)
		if arc >= required {
			return s.bisect(start, lo, hi, required), true
		}
		lo = hi
		if arc < required*0.5 {
			step *= searchStepGrowth
		}
	}
	return lo, false
}

func (s *session) bisect(start, lo, hi, required float64) float64 {
	for i := 0; i < bisectRounds; i++ {
		mid := (lo + hi) / 2
		if s.spiral.ArcLength(start, mid) < required {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

var _ cloud.Strategy = (*Placer)(nil)
