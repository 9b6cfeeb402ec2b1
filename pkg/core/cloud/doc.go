// Package cloud defines the data model shared by the word-cloud placers.
//
// # Overview
//
// A layout pass turns an ordered list of [Token] values into [Placed] values
// inside a bounded [Region]:
//
//  1. Each token's size category is resolved to a pixel font size.
//  2. Each token is measured exactly once ([Measured]).
//  3. A [Strategy] assigns a centre position (and, for the spiral strategy, a
//     rotation) to every measured token.
//
// The result of a pass is a [Result]. Results are never mutated incrementally:
// a resize or content change discards the previous result and recomputes it.
//
// # Strategies
//
// Two strategies share the same contract and are interchangeable:
//
//   - spiral: tokens are walked one by one along a golden spiral, each taking
//     an arc proportional to its measured width (see the spiral subpackage).
//   - scatter: tokens are seeded at Halton points and pushed outward along a
//     golden-angle probe until their bounding boxes stop colliding (see the
//     scatter subpackage).
//
// Both strategies are deterministic: identical tokens, sizes and region
// dimensions produce bit-identical output.
//
// # Ordering
//
// The scatter strategy requires larger tokens first ([SortForScatter]). The
// spiral strategy consumes its input in order; callers that want an organic
// look shuffle upstream with [Shuffle], which is seeded and therefore
// reproducible.
package cloud
