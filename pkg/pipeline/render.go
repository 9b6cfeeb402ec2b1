package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/observability"
	"github.com/matzehuels/techcloud/pkg/render"
	"github.com/matzehuels/techcloud/pkg/render/sink"
)

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, res cloud.Result, opts Options) (artifacts map[string][]byte, err error) {
	start := time.Now()
	defer func() {
		ev := observability.RenderEvent{Formats: opts.Formats, Duration: time.Since(start), Err: err}
		for _, data := range artifacts {
			ev.Bytes += len(data)
		}
		observability.Pipeline().OnRender(ctx, ev)
	}()

	sinkOpts := opts.SinkOptions()
	artifacts = make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case render.FormatSVG:
			data = sink.RenderSVG(res, sinkOpts...)
		case render.FormatPNG:
			data, err = sink.RenderPNG(res, sinkOpts...)
		case render.FormatPDF:
			data, err = sink.RenderPDF(res, sinkOpts...)
		case render.FormatJSON:
			data, err = sink.RenderJSON(res, opts.JSONOptions()...)
		case render.FormatTXT:
			data = []byte(sink.RenderText(res, sinkOpts...))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
