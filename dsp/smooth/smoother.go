// Package smooth implements exponential parameter smoothing for control
// values that must not jump between samples.
package smooth

import (
	"fmt"
	"math"
)

// DefaultRate moves 0.1% of the remaining gap per step, the rate the
// engine uses for delay-time parameters.
const DefaultRate = 0.001

// Smoother approaches a target value exponentially: each Step closes a
// fixed fraction of the remaining gap. Use it for delay-time-like
// parameters where an instantaneous jump produces an audible click;
// parameters recomputed at block boundaries (filter cutoffs) may step
// discretely and do not need one.
type Smoother struct {
	value  float64
	target float64
	rate   float64
}

// New returns a smoother resting at initial.
func New(initial, rate float64) (*Smoother, error) {
	if rate <= 0 || rate > 1 || math.IsNaN(rate) {
		return nil, fmt.Errorf("smoother rate must be in (0, 1]: %f", rate)
	}

	return &Smoother{value: initial, target: initial, rate: rate}, nil
}

// SetTarget updates the value the smoother approaches.
func (s *Smoother) SetTarget(target float64) {
	s.target = target
}

// Step advances the current value toward the target and returns it.
func (s *Smoother) Step() float64 {
	s.value += s.rate * (s.target - s.value)
	return s.value
}

// Value returns the current value without advancing.
func (s *Smoother) Value() float64 {
	return s.value
}

// Target returns the current target.
func (s *Smoother) Target() float64 {
	return s.target
}

// Snap jumps the current value straight to the target, for initial
// configuration where no click can occur.
func (s *Smoother) Snap() {
	s.value = s.target
}
