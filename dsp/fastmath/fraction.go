package fastmath

import "math"

const twoPow32 = 4294967296.0

// Fraction converts a fixed-point phase word to a float in [0, 1).
func Fraction(val uint32) float64 {
	return float64(val) * (1.0 / twoPow32)
}

// FractionToUint32 converts the fractional part of val to a fixed-point
// phase word. Whole cycles are discarded, so any finite input maps into
// the 32-bit phase space without overflow.
func FractionToUint32(val float64) uint32 {
	val -= math.Floor(val)
	// The uint64 intermediate absorbs the case where rounding pushes
	// val*2^32 to exactly 2^32, which then wraps to phase zero.
	return uint32(uint64(val * twoPow32))
}
