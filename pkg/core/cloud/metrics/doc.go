// Package metrics measures rendered text for the word-cloud placers.
//
// # Overview
//
// Placement needs the pixel width and height of every token at its font size.
// A [Measurer] answers that question; the placers never measure text
// themselves. Four implementations are provided:
//
//   - [Heuristic]: fixed per-rune advance and line-height ratios. Fast,
//     dependency free and identical on every platform; used by tests.
//   - [OpenType]: sums glyph advances and kerning of a TrueType font through
//     golang.org/x/image/font/opentype.
//   - [Shaped]: runs full HarfBuzz shaping through go-text/typesetting, which
//     accounts for ligatures and contextual forms.
//   - [Canvas]: measures with tdewolff/canvas font faces, matching the PNG and
//     PDF sinks exactly.
//
// All font-backed measurers default to the embedded Go fonts (see the fonts
// package).
//
// # Passes
//
// Each token is measured once per layout pass. [Cached] wraps any measurer
// with a memo for the duration of one pass; create a new one per pass.
//
// # Sanitizing
//
// Measurers may return garbage for exotic input. [Sanitize] maps negative,
// NaN and infinite values to zero and is applied by [Measure].
package metrics
