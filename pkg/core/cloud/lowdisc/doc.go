// Package lowdisc provides the deterministic randomness used by the placers.
//
// Nothing in this package is seeded from the clock or a process-wide counter.
// Every value is a pure function of its inputs so that layouts are reproducible
// across runs, machines and implementations:
//
//   - [Hash] is 32-bit FNV-1a over the UTF-16 code units of a string.
//   - [Unit] maps a hash to a float in [0, 1).
//   - [Halton] is the radical-inverse low-discrepancy sequence.
//
// Hashing UTF-16 code units (rather than UTF-8 bytes) keeps hashes identical to
// implementations that index strings by code unit, which is what the original
// layouts were generated with.
package lowdisc
