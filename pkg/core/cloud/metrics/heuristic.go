package metrics

import "unicode/utf8"

// Default ratios for [Heuristic], relative to the font size.
const (
	DefaultCharWidth  = 0.55
	DefaultLineHeight = 1.2
)

// Heuristic estimates text size from the rune count. Zero fields take their
// defaults. The family is ignored.
type Heuristic struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements Measurer.
func (h Heuristic) Measure(text string, sizePx float64, _ string) Size {
	cw, lh := h.CharWidth, h.LineHeight
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	if lh <= 0 {
		lh = DefaultLineHeight
	}
	return Size{
		Width:  float64(utf8.RuneCountInString(text)) * sizePx * cw,
		Height: sizePx * lh,
	}
}
