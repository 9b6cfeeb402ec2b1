package sink

import (
	"math"

	"github.com/matzehuels/techcloud/pkg/fonts"
)

// Zoom bounds for the global view scale.
const (
	MinZoom     = 0.5
	MaxZoom     = 4.0
	ZoomStep    = 0.25
	DefaultZoom = 1.0
)

// Default colors.
const (
	DefaultForeground = "#1f2328"
	DefaultBoxColor   = "#d0342c"
)

// Option configures the SVG, PNG, PDF and text sinks.
type Option func(*renderer)

type renderer struct {
	rotate     float64 // degrees, clockwise
	zoom       float64
	family     string
	foreground string
	background string
	embedFont  bool
	boxes      bool
	scale      float64
	cols, rows int
}

// WithRotate rotates the whole cloud clockwise by deg degrees about its centre.
func WithRotate(deg float64) Option { return func(r *renderer) { r.rotate = deg } }

// WithZoom scales the whole cloud about its centre. The factor is clamped to
// [MinZoom, MaxZoom].
func WithZoom(z float64) Option { return func(r *renderer) { r.zoom = ClampZoom(z) } }

// WithFamily selects the font family used to draw text.
func WithFamily(family string) Option { return func(r *renderer) { r.family = family } }

// WithForeground sets the text color as a CSS hex color.
func WithForeground(hex string) Option { return func(r *renderer) { r.foreground = hex } }

// WithBackground fills the region with a CSS hex color. Without it the
// background is transparent.
func WithBackground(hex string) Option { return func(r *renderer) { r.background = hex } }

// WithEmbeddedFont inlines the font file into SVG output as a data URL.
func WithEmbeddedFont() Option { return func(r *renderer) { r.embedFont = true } }

// WithBoxes outlines each token's bounding box.
func WithBoxes() Option { return func(r *renderer) { r.boxes = true } }

// WithScale sets the PNG pixel density factor (default 2.0).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithGrid sets the text sink grid size in character cells (default 80x24).
func WithGrid(cols, rows int) Option {
	return func(r *renderer) {
		if cols > 0 && rows > 0 {
			r.cols, r.rows = cols, rows
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		zoom:       DefaultZoom,
		family:     fonts.DefaultFamily,
		foreground: DefaultForeground,
		scale:      2.0,
		cols:       80,
		rows:       24,
	}
	for _, opt := range opts {
		opt(&r)
	}
	r.family = fonts.Resolve(r.family)
	return r
}

// ClampZoom limits z to [MinZoom, MaxZoom]. Zero and NaN map to DefaultZoom.
func ClampZoom(z float64) float64 {
	if z == 0 || math.IsNaN(z) {
		return DefaultZoom
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// view maps region coordinates through the global zoom and rotation about
// the region centre.
func (r renderer) view(x, y, cx, cy float64) (float64, float64) {
	s, c := math.Sincos(r.rotate * math.Pi / 180)
	dx, dy := (x-cx)*r.zoom, (y-cy)*r.zoom
	return cx + dx*c - dy*s, cy + dx*s + dy*c
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
