// Package spiral implements golden-spiral geometry and the spiral text placer.
//
// # Geometry
//
// The curve is the logarithmic spiral r(θ) = a·e^(bθ) with b = ln(φ)/(π/2),
// which grows by the golden ratio φ every quarter turn. The start radius a is a
// fraction of the region's smaller dimension (7% by default). Arc lengths are
// integrated numerically by summing chord lengths over samples no further than
// [DefaultMinAngleStep] radians apart.
//
// # Placement
//
// [Placer] walks tokens along the curve in input order. Each token claims the
// arc that follows the previous token, with an arc length of
// width × [DefaultWordSpacing]. Consecutive tokens therefore never overlap in
// arc length. Visual overlap can still happen near the centre where the radius
// grows slowly relative to the token height; that is a cosmetic tradeoff, not a
// correctness violation.
//
// The angle search grows its step geometrically and then refines with ten
// bisection rounds. The growth loop is capped at Options.MaxSearchSteps; a
// token that exhausts the cap is placed at the furthest angle reached and the
// result is marked incomplete.
package spiral
