package sink

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
)

// RenderPNG rasterizes a layout result. The image is the region size times
// the scale factor (see [WithScale]).
func RenderPNG(res cloud.Result, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c, err := drawCanvas(res, r)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(metrics.PxPerMM*r.scale), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
