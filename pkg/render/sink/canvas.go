package sink

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
)

var faces = sync.OnceValues(metrics.NewCanvas)

// drawCanvas draws res onto a new canvas sized in millimetres. The canvas uses
// its default y-up coordinate system, so region y coordinates are flipped and
// clockwise rotations are negated.
func drawCanvas(res cloud.Result, r renderer) (*canvas.Canvas, error) {
	fm, err := faces()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	region := res.Region.Clamped()
	w, h := mm(region.Width), mm(region.Height)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)

	if r.background != "" {
		ctx.SetFillColor(canvas.Hex(r.background))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	}

	fg := canvas.Hex(r.foreground)
	ctx.Translate(w/2, h/2)
	ctx.Scale(r.zoom, r.zoom)
	ctx.Rotate(-r.rotate)
	ctx.Translate(-w/2, -h/2)

	for _, t := range res.Tokens {
		face := fm.Face(r.family, t.FontSizePx, fg)
		if face == nil {
			return nil, fmt.Errorf("no font face for family %q", r.family)
		}
		ctx.Push()
		ctx.Translate(mm(t.X), h-mm(t.Y))
		ctx.Rotate(-degrees(t.Rotation))
		if r.boxes {
			ctx.SetFillColor(canvas.Transparent)
			ctx.SetStrokeColor(canvas.Hex(DefaultBoxColor))
			ctx.SetStrokeWidth(0.2)
			ctx.DrawPath(-mm(t.Width)/2, -mm(t.Height)/2, canvas.Rectangle(mm(t.Width), mm(t.Height)))
		}
		fmet := face.Metrics()
		line := canvas.NewTextLine(face, t.Text, canvas.Center)
		ctx.DrawText(0, -(fmet.Ascent-fmet.Descent)/2, line)
		ctx.Pop()
	}
	return c, nil
}

func mm(px float64) float64 { return px / metrics.PxPerMM }
