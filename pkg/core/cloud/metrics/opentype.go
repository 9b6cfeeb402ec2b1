package metrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/techcloud/pkg/fonts"
)

type faceKey struct {
	family string
	size   float64
}

// OpenType measures text by summing glyph advances and kerning of a parsed
// TrueType font. It is safe for concurrent use.
type OpenType struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewOpenType returns a measurer loaded with the embedded fonts.
func NewOpenType() (*OpenType, error) {
	o := &OpenType{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for _, name := range fonts.Families() {
		if err := o.Load(name, fonts.TTF(name)); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Load registers TrueType data under family, replacing any previous font.
func (o *OpenType) Load(family string, ttf []byte) error {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fonts[family] = f
	for k := range o.faces {
		if k.family == family {
			delete(o.faces, k)
		}
	}
	return nil
}

// Measure implements Measurer. Unknown families use the default embedded font.
func (o *OpenType) Measure(text string, sizePx float64, family string) Size {
	if sizePx <= 0 {
		return Size{}
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	face, err := o.face(family, sizePx)
	if err != nil {
		return Size{}
	}
	m := face.Metrics()
	return Size{
		Width:  fixedToFloat(font.MeasureString(face, text)),
		Height: fixedToFloat(m.Ascent + m.Descent),
	}
}

func (o *OpenType) face(family string, sizePx float64) (font.Face, error) {
	f, ok := o.fonts[family]
	if !ok {
		family = fonts.Resolve(family)
		f, ok = o.fonts[family]
		if !ok {
			return nil, fmt.Errorf("font %q not loaded", family)
		}
	}
	k := faceKey{family, sizePx}
	if face, ok := o.faces[k]; ok {
		return face, nil
	}
	// 72 DPI makes one point one pixel.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	o.faces[k] = face
	return face, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
