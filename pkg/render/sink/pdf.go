package sink

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

// RenderPDF renders a layout result as a single-page PDF with the region
// size as the page size.
func RenderPDF(res cloud.Result, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c, err := drawCanvas(res, r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, h := c.Size()
	writer := pdf.New(&buf, w, h, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
