// Package osc implements the phase-accumulator oscillator (LFO) used by
// the modulation and synthesis effects.
package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/fastmath"
)

// Waveform selects the oscillator output shape.
type Waveform int

const (
	// Sine outputs a table-approximated sine in [-1, 1].
	Sine Waveform = iota
	// Triangle outputs a symmetric triangle in [-1, 1].
	Triangle
	// Sawtooth outputs the raw phase ramp in [0, 1).
	Sawtooth
)

// Oscillator is a fixed-point phase accumulator. The 32-bit phase word
// wraps by integer overflow, so the waveform period stays exact over
// arbitrarily long runs with no floating-point drift.
//
// Changing frequency between steps does not reset the phase, so
// frequency modulation is click-free.
type Oscillator struct {
	idx        uint32
	step       uint32
	sampleRate float64
}

// New returns an oscillator at phase zero with no increment configured.
func New(sampleRate float64) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &Oscillator{sampleRate: sampleRate}, nil
}

// SetFrequency configures the per-sample phase increment for freq in Hz.
// Frequencies at or above Nyquist alias; the caller clamps to its own
// audible-safe band.
func (o *Oscillator) SetFrequency(hz float64) {
	if hz < 0 {
		hz = 0
	}

	o.step = fastmath.FractionToUint32(hz / o.sampleRate)
}

// SetPeriodMs configures the increment from a cycle duration in
// milliseconds.
func (o *Oscillator) SetPeriodMs(ms float64) {
	if ms <= 0 {
		o.step = 0
		return
	}

	o.SetFrequency(1000 / ms)
}

// SetStep sets the raw fixed-point increment directly. Used by effects
// that derive the increment from table-index arithmetic rather than a
// frequency.
func (o *Oscillator) SetStep(step uint32) {
	o.step = step
}

// Step advances the phase by one sample and returns the waveform value.
func (o *Oscillator) Step(w Waveform) float64 {
	o.idx += o.step
	p := fastmath.Fraction(o.idx)

	switch w {
	case Sine:
		s, _ := fastmath.SinCos(p)
		return s
	case Triangle:
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	case Sawtooth:
		return p
	default:
		return 0
	}
}

// Phase returns the raw phase accumulator.
func (o *Oscillator) Phase() uint32 {
	return o.idx
}

// SetPhase overwrites the raw phase accumulator.
func (o *Oscillator) SetPhase(idx uint32) {
	o.idx = idx
}

// PhaseFraction returns the current phase as a fraction of a cycle in
// [0, 1).
func (o *Oscillator) PhaseFraction() float64 {
	return fastmath.Fraction(o.idx)
}

// OffsetPhase nudges the accumulator by a signed fraction of a cycle.
// Used by the Kuramoto coupling step, which needs to pull oscillators
// toward each other without resetting them.
func (o *Oscillator) OffsetPhase(cycles float64) {
	if cycles >= 0 {
		o.idx += fastmath.FractionToUint32(cycles)
		return
	}

	o.idx -= fastmath.FractionToUint32(-cycles)
}

// SampleRate returns the configured sample rate in Hz.
func (o *Oscillator) SampleRate() float64 {
	return o.sampleRate
}

// Reset returns the phase to zero without touching the increment.
func (o *Oscillator) Reset() {
	o.idx = 0
}
