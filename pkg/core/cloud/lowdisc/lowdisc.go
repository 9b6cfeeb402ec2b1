package lowdisc

import "unicode/utf16"

// FNV-1a parameters for 32-bit hashes.
const (
	offset32 uint32 = 2166136261
	prime32  uint32 = 16777619
)

// unitModulus is 2^32-1. Reducing modulo it keeps Unit strictly below 1.
const unitModulus = 1<<32 - 1

// Hash returns the 32-bit FNV-1a hash of s's UTF-16 code units.
func Hash(s string) uint32 {
	h := offset32
	for _, cu := range utf16.Encode([]rune(s)) {
		h ^= uint32(cu)
		h *= prime32
	}
	return h
}

// Unit maps n to [0, 1) as (n mod (2^32-1)) / (2^32-1).
func Unit(n uint32) float64 {
	return float64(uint64(n)%unitModulus) / unitModulus
}

// UnitOffset maps h+off to [0, 1) like Unit, but adds in 64 bits so a hash
// near 2^32 does not wrap before the reduction.
func UnitOffset(h uint32, off uint64) float64 {
	return float64((uint64(h)+off)%unitModulus) / unitModulus
}

// Halton returns the i-th element (1-based) of the Halton sequence in the given
// base. Index 0 and bases below 2 yield 0.
func Halton(i, base int) float64 {
	if i <= 0 || base < 2 {
		return 0
	}
	var r float64
	f := 1.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}
