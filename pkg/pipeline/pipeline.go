// Package pipeline provides the load → layout → render pipeline for techcloud.
//
// This package implements the complete pipeline that is used by the CLI and
// the HTTP API. By centralizing this logic, both entry points share the same
// defaults, validation and caching behaviour.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a token list from a JSON, TOML or .cloud file
//  2. Layout: Measure every token once and place it with the selected strategy
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, text)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout results and rendered artifacts are cached under content-hash keys.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:   "tech-bits.json",
//	    Strategy: "scatter",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techcloud/pkg/cache"
	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
	"github.com/matzehuels/techcloud/pkg/core/cloud/scatter"
	"github.com/matzehuels/techcloud/pkg/core/cloud/sizes"
	"github.com/matzehuels/techcloud/pkg/core/cloud/spiral"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/fonts"
	"github.com/matzehuels/techcloud/pkg/render"
	"github.com/matzehuels/techcloud/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default region width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default region height in pixels.
	DefaultHeight = 600.0

	// DefaultStrategy is the default placement strategy.
	DefaultStrategy = cloud.StrategySpiral

	// DefaultMeasurer is the default text measurer.
	DefaultMeasurer = metrics.NameHeuristic

	// DefaultSeed is the default shuffle seed for reproducibility.
	DefaultSeed = uint64(42)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Tokens takes precedence over Source.
	Source string        `json:"source,omitempty"`
	Format string        `json:"format,omitempty"`
	Tokens []cloud.Token `json:"tokens,omitempty"`

	// Layout options
	Strategy string             `json:"strategy,omitempty"`
	Measurer string             `json:"measurer,omitempty"`
	Family   string             `json:"family,omitempty"`
	Width    float64            `json:"width,omitempty"`
	Height   float64            `json:"height,omitempty"`
	Padding  float64            `json:"padding,omitempty"`
	Shuffle  bool               `json:"shuffle,omitempty"`
	Seed     uint64             `json:"seed,omitempty"`
	Sizes    map[string]float64 `json:"sizes,omitempty"`
	Spiral   spiral.Options     `json:"spiral,omitempty"`
	Scatter  scatter.Options    `json:"scatter,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Rotate     float64  `json:"rotate,omitempty"` // degrees, clockwise
	Zoom       float64  `json:"zoom,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG pixel density
	Boxes      bool     `json:"boxes,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`
	Background string   `json:"background,omitempty"`
	Foreground string   `json:"foreground,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tokens is the loaded token list.
	Tokens []cloud.Token

	// TokensHash is the content hash of the token list.
	TokensHash string

	// Layout is the placed cloud.
	Layout cloud.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TokenCount int
	Fallbacks  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if len(o.Tokens) == 0 && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "tokens or source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	o.Family = fonts.Resolve(o.Family)
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Shuffle && o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := cloud.ValidateStrategy(o.Strategy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStrategy, err, "invalid strategy")
	}
	if err := metrics.Validate(o.Measurer); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMeasurer, err, "invalid measurer")
	}
	if err := errors.ValidateRegion(o.Width, o.Height); err != nil {
		return err
	}
	if err := o.SizeScale().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid size scale")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	o.Zoom = sink.ClampZoom(o.Zoom)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid format")
		}
	}
	return nil
}

// Region returns the layout region.
func (o *Options) Region() cloud.Region {
	return cloud.Region{Width: o.Width, Height: o.Height, Padding: o.Padding}
}

// SizeScale returns the default size scale with the configured overrides.
func (o *Options) SizeScale() sizes.Scale {
	return sizes.Default().Merge(o.Sizes)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	tuning, _ := json.Marshal(struct {
		Spiral  spiral.Options
		Scatter scatter.Options
		Sizes   sizes.Scale
	}{o.Spiral, o.Scatter, o.SizeScale()})

	return cache.LayoutKeyOpts{
		Strategy: o.Strategy,
		Measurer: o.Measurer,
		Family:   o.Family,
		Width:    o.Width,
		Height:   o.Height,
		Padding:  o.Padding,
		Shuffle:  o.Shuffle,
		Seed:     o.Seed,
		Tuning:   cache.Hash(tuning),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Family:     o.Family,
		Rotate:     o.Rotate,
		Zoom:       o.Zoom,
		Scale:      o.Scale,
		Boxes:      o.Boxes,
		EmbedFont:  o.EmbedFont,
		Background: o.Background,
		Foreground: o.Foreground,
	}
}

// SinkOptions returns the render options for the SVG, PNG, PDF and text sinks.
func (o *Options) SinkOptions() []sink.Option {
	opts := []sink.Option{
		sink.WithFamily(o.Family),
		sink.WithRotate(o.Rotate),
		sink.WithZoom(o.Zoom),
	}
	if o.Scale > 0 {
		opts = append(opts, sink.WithScale(o.Scale))
	}
	if o.Boxes {
		opts = append(opts, sink.WithBoxes())
	}
	if o.EmbedFont {
		opts = append(opts, sink.WithEmbeddedFont())
	}
	if o.Background != "" {
		opts = append(opts, sink.WithBackground(o.Background))
	}
	if o.Foreground != "" {
		opts = append(opts, sink.WithForeground(o.Foreground))
	}
	return opts
}

// JSONOptions returns the metadata options for the JSON sink.
func (o *Options) JSONOptions() []sink.JSONOption {
	opts := []sink.JSONOption{
		sink.WithJSONMeasurer(o.Measurer),
		sink.WithJSONFamily(o.Family),
	}
	if o.Shuffle {
		opts = append(opts, sink.WithJSONShuffle(o.Seed))
	}
	return opts
}
