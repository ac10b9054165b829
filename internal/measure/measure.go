// Package measure provides offline spectral probes used by tests and
// diagnostics. Nothing in here runs on the realtime path; the analysis
// buffers a whole block, windows it, and transforms it in one shot.
package measure

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeSpectrum returns the single-sided magnitude spectrum of a
// Hann-windowed copy of signal. The length must be a power of two.
func MagnitudeSpectrum(signal []float64) ([]float64, error) {
	n := len(signal)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("spectrum length must be a power of two >= 2: %d", n)
	}

	in := make([]complex128, n)
	for i, x := range signal {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		in[i] = complex(x*w, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	half := n/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := 0; i < half; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mags := make([]float64, half)
	vecmath.Magnitude(mags, re, im)

	return mags, nil
}

// DominantFrequency returns the center frequency of the largest non-DC
// bin of the signal's magnitude spectrum.
func DominantFrequency(signal []float64, sampleRate float64) (float64, error) {
	mags, err := MagnitudeSpectrum(signal)
	if err != nil {
		return 0, err
	}

	best := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[best] {
			best = i
		}
	}

	return float64(best) * sampleRate / float64(len(signal)), nil
}

// GainAt returns the output/input magnitude ratio at the bin nearest
// freq. Both signals must have the same power-of-two length.
func GainAt(in, out []float64, freq, sampleRate float64) (float64, error) {
	if len(in) != len(out) {
		return 0, fmt.Errorf("signal lengths differ: %d vs %d", len(in), len(out))
	}

	inMags, err := MagnitudeSpectrum(in)
	if err != nil {
		return 0, err
	}

	outMags, err := MagnitudeSpectrum(out)
	if err != nil {
		return 0, err
	}

	bin := int(math.Round(freq * float64(len(in)) / sampleRate))
	if bin < 0 || bin >= len(inMags) {
		return 0, fmt.Errorf("frequency %f Hz out of range for %d bins at %f Hz", freq, len(inMags), sampleRate)
	}

	if inMags[bin] == 0 {
		return 0, fmt.Errorf("no input energy at %f Hz", freq)
	}

	return outMags[bin] / inMags[bin], nil
}
