// Package layout runs one complete word-cloud layout pass.
//
// [Build] resolves font sizes, measures every token exactly once, optionally
// shuffles the input for the spiral strategy and hands the measured tokens to
// the selected placer:
//
//	res, err := layout.Build(ctx, tokens, cloud.Region{Width: 800, Height: 600},
//	    layout.Options{Strategy: cloud.StrategyScatter, Measurer: m})
//
// A pass never mutates its input and never reuses state from a previous pass.
// Context cancellation is checked between measurements; placement itself is
// synchronous.
package layout
