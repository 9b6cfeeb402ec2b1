package cloud

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// SortForScatter returns a copy of tokens ordered by descending size category,
// ties broken by ascending text. Larger tokens claim space first.
func SortForScatter(tokens []Measured) []Measured {
	out := slices.Clone(tokens)
	slices.SortStableFunc(out, func(a, b Measured) int {
		if c := cmp.Compare(b.Size.Rank(), a.Size.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})
	return out
}

// Shuffle returns a copy of tokens in a pseudo-random order derived from seed.
// The same seed always yields the same order.
func Shuffle[T any](tokens []T, seed uint64) []T {
	out := slices.Clone(tokens)
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
