// Package sizes maps size categories to pixel font sizes.
package sizes

import (
	"fmt"
	"maps"
	"strings"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

// Scale maps each size category to a font size in pixels.
type Scale map[cloud.SizeCategory]float64

// Default returns the default scale, the Tailwind text sizes from sm to 5xl.
func Default() Scale {
	return Scale{
		cloud.SizeSM:   14,
		cloud.SizeBase: 16,
		cloud.SizeLG:   18,
		cloud.SizeXL:   20,
		cloud.Size2XL:  24,
		cloud.Size3XL:  30,
		cloud.Size4XL:  36,
		cloud.Size5XL:  48,
	}
}

// Merge returns a copy of s with every positive entry of override applied.
// Keys that are not size categories are ignored.
func (s Scale) Merge(override map[string]float64) Scale {
	out := maps.Clone(s)
	if out == nil {
		out = Scale{}
	}
	for k, v := range override {
		c := cloud.SizeCategory(strings.ToLower(strings.TrimSpace(k)))
		if v > 0 && c.Valid() {
			out[c] = v
		}
	}
	return out
}

// Px returns the pixel size for c. Unknown categories and categories missing
// from s use the base size; a scale without a base entry falls back to the
// default base size.
func (s Scale) Px(c cloud.SizeCategory) float64 {
	if v, ok := s[c]; ok && v > 0 {
		return v
	}
	if v, ok := s[cloud.SizeBase]; ok && v > 0 {
		return v
	}
	return Default()[cloud.SizeBase]
}

// Validate checks that the scale is non-decreasing from sm to 5xl.
func (s Scale) Validate() error {
	prev := 0.0
	for _, c := range cloud.Categories {
		v := s.Px(c)
		if v < prev {
			return fmt.Errorf("size %s (%gpx) is smaller than the previous category (%gpx)", c, v, prev)
		}
		prev = v
	}
	return nil
}

// Resolve returns a copy of tokens with FontSizePx filled in from s. Tokens
// that already carry a positive FontSizePx keep it.
func (s Scale) Resolve(tokens []cloud.Token) []cloud.Token {
	out := make([]cloud.Token, len(tokens))
	for i, t := range tokens {
		if t.FontSizePx <= 0 {
			t.FontSizePx = s.Px(t.Size)
		}
		out[i] = t
	}
	return out
}
