package fastmath

import "math"

const ln2 = 0.69314718055994530942

// Taylor coefficients for 2**x - 1 = expm1(x*ln2).
const (
	pow2C1 = ln2
	pow2C2 = ln2 * ln2 / 2
	pow2C3 = ln2 * ln2 * ln2 / 6
	pow2C4 = ln2 * ln2 * ln2 * ln2 / 24
)

// Pow2M1 approximates 2**x - 1 using a 4-term Taylor expansion.
// Accurate for small x, mainly 0..1 (pitch-ratio mapping); usable
// down to -1.
func Pow2M1(x float64) float64 {
	x2 := x * x
	x3 := x2 * x

	return pow2C1*x + pow2C2*x2 + pow2C3*x3 + pow2C4*x2*x2
}

// powMagic is the bit pattern of 1.0 shifted by the sigma correction that
// minimizes the average error of the exponent/mantissa reinterpretation.
const powMagic = 4606921280493453312

// powMaxBits keeps the reinterpreted result a finite positive float.
const powMaxBits = 0x7FEFFFFFFFFFFFFF

// Pow approximates a**b for a > 0 by scaling the IEEE-754 bit pattern of
// a linearly in b. The estimate is monotonic in both arguments but only
// approximately accurate (b = 1 reproduces a exactly, elsewhere expect a
// few percent). Non-positive bases and out-of-range results are clamped
// so the return value is always finite and non-negative.
func Pow(a, b float64) float64 {
	if a <= 0 {
		return 0
	}

	i := int64(math.Float64bits(a))

	// Clamp in the float domain before converting back, so extreme
	// exponents cannot overflow the bit-pattern arithmetic.
	f := b*float64(i-powMagic) + powMagic
	if f <= 0 {
		return 0
	}

	if f >= powMaxBits {
		f = powMaxBits
	}

	return math.Float64frombits(uint64(int64(f)))
}
