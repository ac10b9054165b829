package fastmath

// softLimitDomain is the edge of the region where the limiter polynomial
// is monotonically increasing (the smaller root of its derivative,
// sqrt(10/3)). Inputs beyond it are pinned to the edge value.
const softLimitDomain = 1.8257418583505538

// SoftLimit maps any finite input smoothly into (-1, 1) without a hard
// knee, so two signals in [-1, 1] can be summed and tamed back into
// range. Odd and monotonically non-decreasing.
func SoftLimit(x float64) float64 {
	if x > softLimitDomain {
		x = softLimitDomain
	} else if x < -softLimitDomain {
		x = -softLimitDomain
	}

	x2 := x * x
	x4 := x2 * x2

	return x * (1 - 0.19*x2 + 0.0162*x4)
}
