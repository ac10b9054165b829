package biquad

import "github.com/cwbudde/algo-fx/dsp/core"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing, which realizes the
// direct-form difference equation with two persistent delay taps.
//
// Sections are assumed well-formed: the design functions in this package
// clamp frequency and Q into stable ranges, and callers must not hand a
// Section coefficients with poles outside the unit circle. Step performs
// no validation.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// Step filters one input sample and returns the output. The delay taps
// are flushed to exact zero once they decay into denormal range.
func (s *Section) Step(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = core.FlushDenormals(s.B1*x - s.A1*y + s.d1)
	s.d1 = core.FlushDenormals(s.B2*x - s.A2*y)

	return y
}

// StepBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) StepBlock(buf []float64) {
	for i, x := range buf {
		y := s.B0*x + s.d0
		s.d0 = core.FlushDenormals(s.B1*x - s.A1*y + s.d1)
		s.d1 = core.FlushDenormals(s.B2*x - s.A2*y)
		buf[i] = y
	}
}

// Reset clears the delay taps to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-tap state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-tap state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
