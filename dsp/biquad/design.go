package biquad

import (
	"github.com/cwbudde/algo-fx/dsp/fastmath"
)

// Coefficient synthesis from the RBJ cookbook bilinear-transform
// formulas, computed with the fast table trig instead of exact trig.
// Frequencies are clamped into (0, 0.49*sampleRate) and non-positive Q
// falls back to the Butterworth default; beyond that, well-formed inputs
// are the caller's invariant.

const (
	defaultQ     = 0.70710678118654752440
	minDesignHz  = 1.0
	maxFreqRatio = 0.49
)

func designAngle(freq, sampleRate float64) (sn, cs float64) {
	maxFreq := maxFreqRatio * sampleRate
	if freq < minDesignHz {
		freq = minDesignHz
	}

	if freq > maxFreq {
		freq = maxFreq
	}

	return fastmath.SinCos(freq / sampleRate)
}

func normalizedQ(q float64) float64 {
	if q <= 0 {
		return defaultQ
	}

	return q
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	inv := 1 / a0

	return Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
}

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) Coefficients {
	sn, cs := designAngle(freq, sampleRate)
	alpha := sn / (2 * normalizedQ(q))

	b1 := 1 - cs
	b0 := b1 / 2

	return normalize(b0, b1, b0, 1+alpha, -2*cs, 1-alpha)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	sn, cs := designAngle(freq, sampleRate)
	alpha := sn / (2 * normalizedQ(q))

	b0 := (1 + cs) / 2
	b1 := -(1 + cs)

	return normalize(b0, b1, b0, 1+alpha, -2*cs, 1-alpha)
}

// Allpass designs an allpass biquad centered at freq (Hz): unity
// magnitude at every frequency, phase shift concentrated around freq.
func Allpass(freq, q, sampleRate float64) Coefficients {
	sn, cs := designAngle(freq, sampleRate)
	alpha := sn / (2 * normalizedQ(q))

	return normalize(1-alpha, -2*cs, 1+alpha, 1+alpha, -2*cs, 1-alpha)
}

// AllpassChain designs one allpass section per center frequency, all at
// the same Q. This is the building block of the Hilbert-style 90 degree
// phase network in the formant shifter.
func AllpassChain(freqs []float64, q, sampleRate float64) []Coefficients {
	coeffs := make([]Coefficients, len(freqs))
	for i, f := range freqs {
		coeffs[i] = Allpass(f, q, sampleRate)
	}

	return coeffs
}
