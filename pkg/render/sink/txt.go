package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

// RenderText draws a layout result onto a character grid (see [WithGrid]).
// Each token is written horizontally, centred on its projected position.
// Later tokens overwrite earlier ones where they share cells. Rotation of
// individual tokens is ignored; the global zoom and rotation are applied.
func RenderText(res cloud.Result, opts ...Option) string {
	r := newRenderer(opts...)
	grid := make([][]rune, r.rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", r.cols))
	}

	region := res.Region.Clamped()
	cx, cy := region.Width/2, region.Height/2
	sx, sy := float64(r.cols)/region.Width, float64(r.rows)/region.Height

	for _, t := range res.Tokens {
		x, y := r.view(t.X, t.Y, cx, cy)
		row := int(math.Floor(y * sy))
		if row < 0 || row >= r.rows {
			continue
		}
		text := []rune(t.Text)
		col := int(math.Round(x*sx)) - len(text)/2
		for i, ch := range text {
			if c := col + i; c >= 0 && c < r.cols {
				grid[row][c] = ch
			}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
