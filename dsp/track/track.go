// Package track implements the input trackers feeding the synthesis
// effects: a peak amplitude follower and a zero-crossing fundamental
// tracker.
package track

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/biquad"
	"github.com/cwbudde/algo-fx/dsp/core"
)

// AmplitudeFollower tracks the running peak of a signal with instant
// attack and exponential decay (about 40 dB/s of halving at the default
// constant).
type AmplitudeFollower struct {
	peak  float64
	decay float64
}

// NewAmplitudeFollower returns a follower with the decay constant used
// by the synthesis effects: the peak halves 40 times per second.
func NewAmplitudeFollower(sampleRate float64) (*AmplitudeFollower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("amplitude follower sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &AmplitudeFollower{decay: math.Pow(0.5, 40/sampleRate)}, nil
}

// Step feeds one sample and returns the tracked peak amplitude.
func (f *AmplitudeFollower) Step(in float64) float64 {
	a := math.Abs(in)
	if a < f.peak {
		a = core.Lerp(f.decay, a, f.peak)
	}

	f.peak = a

	return a
}

// Peak returns the tracked amplitude without advancing.
func (f *AmplitudeFollower) Peak() float64 {
	return f.peak
}

// Reset clears the tracked peak.
func (f *AmplitudeFollower) Reset() {
	f.peak = 0
}

// Pitch tracking constants. Estimates outside the plausible fundamental
// band are discarded; accepted estimates are blended gently into the
// smoothed frequency, which rejects most octave and doubling errors
// probabilistically. Polyphonic input yields an unspecified (but
// bounded) tracked pitch.
const (
	trackLowpassHz  = 1000.0
	minFundamental  = 40.0
	maxFundamental  = 2000.0
	freqSmoothing   = 0.1
	thresholdRatio  = 0.1
	thresholdFloor  = 1e-4
	defaultTrackedF = 110.0
)

// PitchTracker estimates the fundamental frequency of a monophonic
// signal by timing positive-going zero crossings of a lowpassed copy.
type PitchTracker struct {
	sampleRate float64
	lpf        *biquad.Section

	sinceCross int
	isHigh     bool
	freq       float64
}

// NewPitchTracker returns a tracker primed at 110 Hz (A2).
func NewPitchTracker(sampleRate float64) (*PitchTracker, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pitch tracker sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &PitchTracker{
		sampleRate: sampleRate,
		lpf:        biquad.NewSection(biquad.Lowpass(trackLowpassHz, 0.707, sampleRate)),
		freq:       defaultTrackedF,
	}, nil
}

// Step feeds one sample plus the current tracked amplitude and returns
// the smoothed fundamental estimate in Hz. The amplitude sets the
// crossing threshold so noise around zero does not register as pitch.
func (p *PitchTracker) Step(in, amplitude float64) float64 {
	clean := p.lpf.Step(in)

	p.sinceCross++

	threshold := amplitude * thresholdRatio
	if threshold < thresholdFloor {
		threshold = thresholdFloor
	}

	switch {
	case !p.isHigh && clean > threshold:
		p.isHigh = true

		freq := p.sampleRate / float64(p.sinceCross)
		if freq > minFundamental && freq < maxFundamental {
			p.freq = core.Lerp(freqSmoothing, p.freq, freq)
		}

		p.sinceCross = 0
	case p.isHigh && clean < -threshold:
		p.isHigh = false
	}

	return p.freq
}

// Frequency returns the smoothed fundamental estimate without advancing.
func (p *PitchTracker) Frequency() float64 {
	return p.freq
}

// Reset restores the primed state.
func (p *PitchTracker) Reset() {
	p.lpf.Reset()
	p.sinceCross = 0
	p.isHigh = false
	p.freq = defaultTrackedF
}
