package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/fonts"
)

const revealCSS = `
    .token { opacity: 0; animation: reveal 0.35s ease-out forwards; animation-delay: calc(var(--order) * 40ms); }
    @keyframes reveal { to { opacity: 1; } }
    @media (prefers-reduced-motion: reduce) { .token { animation: none; opacity: 1; } }`

// RenderSVG renders a layout result as SVG. Tokens are written in placement
// order and carry a data-order attribute for progressive reveal.
func RenderSVG(res cloud.Result, opts ...Option) []byte {
	r := newRenderer(opts...)
	region := res.Region.Clamped()
	w, h := region.Width, region.Height
	cx, cy := w/2, h/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	renderStyle(&buf, r)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.2f %.2f) scale(%.3f) rotate(%.2f) translate(%.2f %.2f)">`+"\n",
		cx, cy, r.zoom, r.rotate, -cx, -cy)
	for i, t := range res.Tokens {
		renderToken(&buf, r, i, t)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStyle(buf *bytes.Buffer, r renderer) {
	family := escapeXML(cssFamily(r.family))
	buf.WriteString("  <style>")
	if r.embedFont {
		fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			family, fonts.TTFBase64(r.family))
	}
	fmt.Fprintf(buf, "\n    .token { font-family: '%s', %s; fill: %s; }", family, fonts.FallbackFontFamily, escapeXML(r.foreground))
	buf.WriteString(revealCSS)
	buf.WriteString("\n  </style>\n")
}

func renderToken(buf *bytes.Buffer, r renderer, order int, t cloud.Placed) {
	rot := ""
	if t.Rotation != 0 {
		rot = fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, degrees(t.Rotation), t.X, t.Y)
	}
	if r.boxes {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="0.5"%s/>`+"\n",
			t.X-t.Width/2, t.Y-t.Height/2, t.Width, t.Height, DefaultBoxColor, rot)
	}
	fmt.Fprintf(buf, `    <text class="token" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="central" data-order="%d" data-size="%s" style="--order: %d"%s>%s</text>`+"\n",
		t.X, t.Y, t.FontSizePx, order, escapeXML(string(t.Size)), order, rot, escapeXML(t.Text))
}

// cssFamily drops characters that would end the quoted family name or the
// enclosing style element.
func cssFamily(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', '\\', ';', '{', '}', '<', '>', '&', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
