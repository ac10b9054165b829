package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fx/dsp/fastmath"
	"github.com/cwbudde/algo-fx/internal/measure"
	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestHarmonicBraidBlendZeroIsIdentity(t *testing.T) {
	b, err := NewHarmonicBraid(testSampleRate)
	require.NoError(t, err)
	b.Init(Pots{0.5, 0.5, 0.5, 0})

	in := testutil.DeterministicSine(220, testSampleRate, 0.8, 4800)
	for i, x := range in {
		require.Equalf(t, x, b.Step(x), "sample %d", i)
	}
}

func TestHarmonicBraidBoundedAtCouplingExtremes(t *testing.T) {
	for _, coupling := range []float64{0, 1} {
		b, err := NewHarmonicBraid(testSampleRate)
		require.NoError(t, err)
		b.Init(Pots{coupling, 0.5, 0.5, 1})

		in := testutil.DeterministicSine(220, testSampleRate, 0.5, 48000)
		for i, x := range in {
			out := b.Step(x)
			require.Falsef(t, math.IsNaN(out) || math.IsInf(out, 0),
				"coupling %v sample %d: output %v", coupling, i, out)
			require.LessOrEqualf(t, math.Abs(out), 1.05,
				"coupling %v sample %d: output %v exceeds limiter ceiling", coupling, i, out)
		}
	}
}

func TestHarmonicBraidCouplingDoesNotWrapAroundBank(t *testing.T) {
	b, err := NewHarmonicBraid(testSampleRate)
	require.NoError(t, err)
	b.Init(Pots{1, 0, 0, 1})

	// First two oscillators in phase, the last a quarter cycle ahead.
	// The first oscillator's only neighbor is the second, so its
	// accumulator must advance by exactly its frequency step; a pull
	// from the far end of the bank would show up as an extra offset.
	for i := range b.oscs {
		b.oscs[i].SetPhase(0)
		b.phase[i] = 0
	}

	last := braidOscCount - 1
	b.oscs[last].SetPhase(fastmath.FractionToUint32(0.25))
	b.phase[last] = 0.25

	before := b.oscs[0].Phase()
	tracked := b.pitch.Frequency()
	b.Step(0)

	step := fastmath.FractionToUint32(braidRatios[0] * tracked / testSampleRate)
	require.Equal(t, before+step, b.oscs[0].Phase())
}

func TestHarmonicBraidFollowsTrackedPitch(t *testing.T) {
	b, err := NewHarmonicBraid(testSampleRate)
	require.NoError(t, err)

	// Sub and brightness off, full wet: the output is the fundamental
	// oscillator alone, retuned to the tracked input pitch.
	b.Init(Pots{0, 0, 0, 1})

	in := testutil.DeterministicSine(440, testSampleRate, 0.8, 2*48000)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = b.Step(x)
	}

	freq, err := measure.DominantFrequency(out[len(out)-4096:], testSampleRate)
	require.NoError(t, err)
	require.InDelta(t, 440, freq, 30)
}

func TestHarmonicBraidSubLevelRaisesEnergy(t *testing.T) {
	energy := func(subLevel float64) float64 {
		b, err := NewHarmonicBraid(testSampleRate)
		require.NoError(t, err)
		b.Init(Pots{0, subLevel, 0, 1})

		in := testutil.DeterministicSine(110, testSampleRate, 0.5, 48000)
		out := make([]float64, len(in))
		for i, x := range in {
			out[i] = b.Step(x)
		}

		return testutil.RMS(out[24000:])
	}

	low := energy(0.2)
	high := energy(0.8)
	require.Greater(t, high, low)
}

func TestHarmonicBraidSilenceDecays(t *testing.T) {
	b, err := NewHarmonicBraid(testSampleRate)
	require.NoError(t, err)
	b.Init(Pots{0.5, 1, 1, 1})

	for _, x := range testutil.DeterministicSine(220, testSampleRate, 0.8, 24000) {
		b.Step(x)
	}

	// The oscillators keep running on silence but the amplitude
	// follower gates them down to nothing.
	var out float64
	for i := 0; i < 2*48000; i++ {
		out = b.Step(0)
	}
	require.InDelta(t, 0, out, 1e-6)
}

func TestHarmonicBraidReset(t *testing.T) {
	b, err := NewHarmonicBraid(testSampleRate)
	require.NoError(t, err)
	b.Init(Pots{1, 1, 1, 1})

	for _, x := range testutil.DeterministicSine(440, testSampleRate, 0.8, 24000) {
		b.Step(x)
	}

	b.Reset()

	// Silence after a reset produces near-silence immediately: the
	// followers are back to zero amplitude.
	for i := 0; i < 100; i++ {
		require.InDelta(t, 0, b.Step(0), 1e-9)
	}
}
