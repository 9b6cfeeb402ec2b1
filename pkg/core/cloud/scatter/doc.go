// Package scatter implements the low-discrepancy scatter placer.
//
// Tokens are sorted largest first, then each token is seeded at the Halton
// point for its 1-based placement index (base 2 for x, base 3 for y), nudged
// by a jitter derived from the hash of its text. From that seed the placer
// probes an outward golden-angle spiral until the token's box, grown by the gap
// margin, stops colliding with every box placed before it.
//
// Later tokens always yield to earlier ones; nothing is moved once placed. A
// token that exhausts the probe budget is dropped at its clamped seed position
// and flagged as a fallback, which marks the whole result incomplete but never
// fails the layout.
package scatter
