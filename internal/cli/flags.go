package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/pipeline"
	"github.com/matzehuels/techcloud/pkg/render"
	"github.com/matzehuels/techcloud/pkg/source"
)

// layoutFlags are the input and placement flags shared by layout, render
// and preview. Unset flags keep the configured value.
type layoutFlags struct {
	format   string
	demo     bool
	strategy string
	measurer string
	family   string
	width    float64
	height   float64
	padding  float64
	shuffle  bool
	seed     uint64
	noCache  bool
	refresh  bool
}

func (f *layoutFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.format, "input-format", "", "token file format: json, toml, cloud (default: from extension)")
	fs.BoolVar(&f.demo, "demo", false, "use the HELLO WORLD demo cloud when no tokens are given")
	fs.StringVarP(&f.strategy, "strategy", "s", "", "placement strategy: spiral, scatter")
	fs.StringVar(&f.measurer, "measurer", "", "text measurer: heuristic, opentype, shaped, canvas")
	fs.StringVar(&f.family, "family", "", "font family")
	fs.Float64Var(&f.width, "width", 0, "region width in pixels")
	fs.Float64Var(&f.height, "height", 0, "region height in pixels")
	fs.Float64Var(&f.padding, "padding", 0, "region padding in pixels (scatter)")
	fs.BoolVar(&f.shuffle, "shuffle", false, "shuffle tokens before placement")
	fs.Uint64Var(&f.seed, "seed", 0, "shuffle seed")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute cached layouts and outputs")

	_ = cmd.RegisterFlagCompletionFunc("strategy", cobra.FixedCompletions(
		[]string{cloud.StrategySpiral, cloud.StrategyScatter}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("measurer", cobra.FixedCompletions(
		metrics.Names, cobra.ShellCompDirectiveNoFileComp))
}

// apply copies the flags the user set onto opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("input-format") {
		opts.Format = f.format
	}
	if fs.Changed("strategy") {
		opts.Strategy = f.strategy
	}
	if fs.Changed("measurer") {
		opts.Measurer = f.measurer
	}
	if fs.Changed("family") {
		opts.Family = f.family
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("padding") {
		opts.Padding = f.padding
	}
	if fs.Changed("shuffle") {
		opts.Shuffle = f.shuffle
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
		opts.Shuffle = true
	}
	opts.Refresh = f.refresh
}

// input sets the token source. With --demo, a missing or empty token file
// is replaced by the demo cloud.
func (f *layoutFlags) input(args []string, opts *pipeline.Options) error {
	if len(args) > 0 {
		opts.Source = args[0]
	}
	if !f.demo {
		if opts.Source == "" {
			return errors.New(errors.ErrCodeInvalidInput, "a token file is required (use - for stdin, or --demo)")
		}
		return nil
	}

	tokens := source.Demo()
	if opts.Source != "" {
		loaded, err := loadTokens(opts.Source, opts.Format)
		if err != nil {
			return err
		}
		if len(loaded) > 0 {
			tokens = loaded
		}
	}
	opts.Tokens = tokens
	return nil
}

func loadTokens(path, format string) ([]cloud.Token, error) {
	if format == "" && path != "-" {
		return source.Load(path)
	}
	f := source.FormatJSON
	if format != "" {
		var err error
		if f, err = source.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return source.LoadFormat(path, f)
}

// renderFlags are the output styling flags shared by render and preview.
type renderFlags struct {
	formats    string
	rotate     float64
	zoom       float64
	scale      float64
	boxes      bool
	embedFont  bool
	background string
	foreground string
}

func (f *renderFlags) bind(cmd *cobra.Command, withFormats bool) {
	fs := cmd.Flags()
	if withFormats {
		fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg, png, pdf, json, txt (comma-separated)")
		_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
			render.Formats, cobra.ShellCompDirectiveNoFileComp))
	}
	fs.Float64Var(&f.rotate, "rotate", 0, "rotation offset in degrees, clockwise")
	fs.Float64Var(&f.zoom, "zoom", 0, "zoom factor (0.5 to 4)")
	fs.Float64Var(&f.scale, "scale", 0, "PNG pixel density")
	fs.BoolVar(&f.boxes, "boxes", false, "draw token bounding boxes")
	fs.BoolVar(&f.embedFont, "embed-font", false, "embed the font in SVG output")
	fs.StringVar(&f.background, "background", "", "background color (hex)")
	fs.StringVar(&f.foreground, "foreground", "", "text color (hex)")
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	fs := cmd.Flags()
	if fs.Changed("format") {
		formats, err := render.ParseFormats(f.formats)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid --format")
		}
		opts.Formats = formats
	}
	if fs.Changed("rotate") {
		opts.Rotate = f.rotate
	}
	if fs.Changed("zoom") {
		opts.Zoom = f.zoom
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("boxes") {
		opts.Boxes = f.boxes
	}
	if fs.Changed("embed-font") {
		opts.EmbedFont = f.embedFont
	}
	if fs.Changed("background") {
		opts.Background = f.background
	}
	if fs.Changed("foreground") {
		opts.Foreground = f.foreground
	}
	return nil
}
