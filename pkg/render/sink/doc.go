// Package sink provides output format renderers for word-cloud layouts.
//
// # Overview
//
// A "sink" transforms a computed [cloud.Result] into a final output format:
//
//   - SVG: hand-written XML with one <text> element per token
//   - JSON: layout export that reads back with [ReadJSON]
//   - PNG: raster output through tdewolff/canvas
//   - PDF: vector output through tdewolff/canvas
//   - Text: a character grid for terminals
//
// Basic usage:
//
//	svg := sink.RenderSVG(res,
//	    sink.WithZoom(1.5),
//	    sink.WithRotate(15),
//	    sink.WithEmbeddedFont(),
//	)
//
// # View Transform
//
// [WithZoom] and [WithRotate] apply one transform to the whole cloud about the
// region centre, after per-token rotation. Zoom is clamped to
// [MinZoom, MaxZoom]; interactive callers step it by [ZoomStep].
//
// # Reveal Order
//
// SVG tokens are emitted in placement order. Each carries data-order and a
// CSS --order variable that staggers a fade-in animation, disabled under
// prefers-reduced-motion.
//
// [cloud.Result]: github.com/matzehuels/techcloud/pkg/core/cloud.Result
package sink
