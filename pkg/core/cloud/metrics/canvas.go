package metrics

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/techcloud/pkg/fonts"
)

// Unit conversions between CSS pixels and the units tdewolff/canvas uses.
const (
	PtPerPx = 0.75
	PxPerMM = 96 / 25.4
)

// Canvas measures text with tdewolff/canvas font faces, the same faces the
// PNG and PDF sinks draw with. It is safe for concurrent use.
type Canvas struct {
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

// NewCanvas returns a canvas measurer loaded with the embedded fonts.
func NewCanvas() (*Canvas, error) {
	c := &Canvas{families: make(map[string]*canvas.FontFamily)}
	for _, name := range fonts.Families() {
		if err := c.Load(name, fonts.TTF(name)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load registers font data under family.
func (c *Canvas) Load(family string, data []byte) error {
	ff := canvas.NewFontFamily(family)
	if err := ff.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return fmt.Errorf("load font %q: %w", family, err)
	}
	c.mu.Lock()
	c.families[family] = ff
	c.mu.Unlock()
	return nil
}

// Face returns a font face for family at sizePx, or nil when no font is loaded.
func (c *Canvas) Face(family string, sizePx float64, col color.Color) *canvas.FontFace {
	c.mu.Lock()
	defer c.mu.Unlock()
	ff, ok := c.families[family]
	if !ok {
		if ff, ok = c.families[fonts.Resolve(family)]; !ok {
			return nil
		}
	}
	return ff.Face(sizePx*PtPerPx, col, canvas.FontRegular, canvas.FontNormal)
}

// Measure implements Measurer. Unknown families use the default embedded font.
func (c *Canvas) Measure(text string, sizePx float64, family string) Size {
	if sizePx <= 0 {
		return Size{}
	}
	face := c.Face(family, sizePx, canvas.Black)
	if face == nil {
		return Size{}
	}
	m := face.Metrics()
	return Size{
		Width:  face.TextWidth(text) * PxPerMM,
		Height: (m.Ascent + m.Descent) * PxPerMM,
	}
}
