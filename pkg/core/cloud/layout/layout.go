package layout

import (
	"context"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
	"github.com/matzehuels/techcloud/pkg/core/cloud/scatter"
	"github.com/matzehuels/techcloud/pkg/core/cloud/sizes"
	"github.com/matzehuels/techcloud/pkg/core/cloud/spiral"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/fonts"
)

// Options configures a layout pass. Zero values take defaults: the spiral
// strategy, the heuristic measurer, the default size scale and the default
// font family.
type Options struct {
	Strategy string
	Measurer metrics.Measurer
	Family   string
	Scale    sizes.Scale

	// Shuffle reorders tokens with Seed before spiral placement. Scatter
	// placement sorts by size and ignores it.
	Shuffle bool
	Seed    uint64

	Spiral  spiral.Options
	Scatter scatter.Options
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = cloud.StrategySpiral
	}
	if o.Measurer == nil {
		o.Measurer = metrics.Heuristic{}
	}
	if o.Family == "" {
		o.Family = fonts.DefaultFamily
	}
	if o.Scale == nil {
		o.Scale = sizes.Default()
	}
	return o
}

// NewStrategy returns the placer registered under name.
func NewStrategy(name string, spiralOpts spiral.Options, scatterOpts scatter.Options) (cloud.Strategy, error) {
	switch name {
	case cloud.StrategySpiral:
		return spiral.NewPlacer(spiralOpts), nil
	case cloud.StrategyScatter:
		return scatter.NewPlacer(scatterOpts), nil
	}
	return nil, errors.Wrap(errors.ErrCodeInvalidStrategy, cloud.ValidateStrategy(name), "unknown strategy %q", name)
}

// Measure resolves font sizes and measures every token once. Tokens with
// identical text and size share a single measurer call.
func Measure(ctx context.Context, tokens []cloud.Token, opts Options) ([]cloud.Measured, error) {
	opts = opts.withDefaults()
	m := metrics.NewCached(opts.Measurer)

	resolved := opts.Scale.Resolve(tokens)
	out := make([]cloud.Measured, len(resolved))
	for i, t := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "measure canceled after %d of %d tokens", i, len(resolved))
		}
		s := m.Measure(t.Text, t.FontSizePx, opts.Family)
		out[i] = cloud.Measured{Token: t, Width: s.Width, Height: s.Height}
	}
	return out, nil
}

// Build runs one layout pass over tokens inside region.
func Build(ctx context.Context, tokens []cloud.Token, region cloud.Region, opts Options) (cloud.Result, error) {
	opts = opts.withDefaults()
	strategy, err := NewStrategy(opts.Strategy, opts.Spiral, opts.Scatter)
	if err != nil {
		return cloud.Result{}, err
	}

	measured, err := Measure(ctx, tokens, opts)
	if err != nil {
		return cloud.Result{}, err
	}
	if opts.Shuffle && opts.Strategy == cloud.StrategySpiral {
		measured = cloud.Shuffle(measured, opts.Seed)
	}
	return strategy.Place(measured, region), nil
}
