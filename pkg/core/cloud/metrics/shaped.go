package metrics

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/techcloud/pkg/fonts"
)

// Shaped measures text after full HarfBuzz shaping, so ligatures, kerning and
// contextual forms are reflected in the width. It is safe for concurrent use.
type Shaped struct {
	mu     sync.Mutex
	fonts  map[string]*font.Font
	shaper shaping.HarfbuzzShaper
}

// NewShaped returns a shaping measurer loaded with the embedded fonts.
func NewShaped() (*Shaped, error) {
	s := &Shaped{fonts: make(map[string]*font.Font)}
	for _, name := range fonts.Families() {
		if err := s.Load(name, fonts.TTF(name)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load registers TrueType data under family.
func (s *Shaped) Load(family string, ttf []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	s.mu.Lock()
	s.fonts[family] = face.Font
	s.mu.Unlock()
	return nil
}

// Measure implements Measurer. Unknown families use the default embedded font.
func (s *Shaped) Measure(text string, sizePx float64, family string) Size {
	if sizePx <= 0 {
		return Size{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fonts[family]
	if !ok {
		if f, ok = s.fonts[fonts.Resolve(family)]; !ok {
			return Size{}
		}
	}

	runes := []rune(text)
	out := s.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(sizePx * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
	return Size{
		Width:  fixedToFloat(out.Advance),
		Height: fixedToFloat(out.LineBounds.Ascent - out.LineBounds.Descent),
	}
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
