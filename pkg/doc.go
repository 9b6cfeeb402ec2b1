// Package pkg provides the core libraries for techcloud word cloud layouts.
//
// # Overview
//
// Techcloud places weighted words ("tokens") inside a rectangle. Two placers
// are available: a golden spiral that strings tokens along its arc, and a
// scatter placer that seeds positions from a Halton sequence and probes
// outward until a token fits without overlapping its neighbours. The pkg
// directory is organized into these areas:
//
//  1. [core/cloud] - Domain logic (tokens, regions, measurement, placers)
//  2. [source] - Token file readers (JSON, TOML, .cloud)
//  3. [render] - Output formats and their renderers
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache], [config], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	token file (JSON / TOML / .cloud)
//	         ↓
//	    [source] package (parse, split, validate)
//	         ↓
//	    [core/cloud/layout] package (size, measure, place)
//	         ↓
//	    [render/sink] package
//	         ↓
//	    SVG/PNG/PDF/JSON/TXT output
//
// # Quick Start
//
// Place tokens along the spiral and render SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/techcloud/pkg/core/cloud"
//	    "github.com/matzehuels/techcloud/pkg/core/cloud/layout"
//	    "github.com/matzehuels/techcloud/pkg/render/sink"
//	)
//
//	tokens := []cloud.Token{
//	    {Text: "Go", Size: cloud.Size3XL},
//	    {Text: "Kafka", Size: cloud.SizeLG},
//	}
//	res, _ := layout.Build(context.Background(), tokens,
//	    cloud.Region{Width: 800, Height: 600},
//	    layout.Options{Strategy: cloud.StrategySpiral})
//	svg := sink.RenderSVG(res, sink.WithZoom(1.5))
//
// # Main Packages
//
// [core/cloud] - Tokens, size categories, regions and boxes. Subpackages
// hold the two placers ([core/cloud/spiral], [core/cloud/scatter]), text
// measurement ([core/cloud/metrics]), the size scale, low-discrepancy
// sequences and the layout pass that ties them together.
//
// [pipeline] - Runs load → layout → render for the CLI and the HTTP API, and
// caches layouts and artifacts under content-hash keys.
//
// [cache] - Byte cache backends: null, file, Redis and MongoDB.
//
// [config] - TOML configuration with .env and environment overrides.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/core/cloud/... # Placers and measurement
//	go test -run Example ./...  # Examples only
//
// [core/cloud]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/core/cloud
// [core/cloud/spiral]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/core/cloud/spiral
// [core/cloud/scatter]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/core/cloud/scatter
// [core/cloud/metrics]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/core/cloud/metrics
// [source]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/source
// [render]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/techcloud/pkg/observability
package pkg
