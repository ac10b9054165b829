package fastmath

import "math"

const (
	quarterSineShift = 8
	quarterSineSteps = 1 << quarterSineShift
)

// quarterSine holds one quarter sine cycle plus two guard entries so the
// descending (cosine) lookup can interpolate past the quarter boundary.
var quarterSine [quarterSineSteps + 2]float64

func init() {
	for i := range quarterSine {
		quarterSine[i] = math.Sin(math.Pi / 2 * float64(i) / quarterSineSteps)
	}
}

// SinCos returns an approximate (sin, cos) pair for a phase given in
// cycles, not radians: SinCos(0.25) is (sin, cos) at 90 degrees.
//
// The sine is read from a quarter-wave table with linear interpolation;
// the cosine reads the same table backwards. Quadrant folding supplies
// the signs. Negative phases are clamped to zero.
func SinCos(phase float64) (sin, cos float64) {
	if phase < 0 {
		phase = 0
	}

	phase *= 4
	quadrant := int(phase)
	phase -= float64(quadrant)

	phase *= quarterSineSteps
	idx := int(phase)
	phase -= float64(idx)

	a := quarterSine[idx]
	b := quarterSine[idx+1]
	x := a + (b-a)*phase

	idx = quarterSineSteps - idx
	a = quarterSine[idx]
	b = quarterSine[idx+1]
	y := a + (a-b)*phase

	if quadrant&1 != 0 {
		x, y = y, -x
	}

	if quadrant&2 != 0 {
		x, y = -x, -y
	}

	return x, y
}
