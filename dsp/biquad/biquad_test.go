package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/internal/testutil"
)

const testSampleRate = 48000.0

// measureGain runs a sine through the section and returns the steady-state
// RMS gain, skipping the filter transient.
func measureGain(s *Section, freq float64) float64 {
	const n = 8000
	const skip = 1000

	in := testutil.DeterministicSine(freq, testSampleRate, 1.0, n)
	out := make([]float64, 0, n-skip)
	for i, x := range in {
		y := s.Step(x)
		if i >= skip {
			out = append(out, y)
		}
	}

	return testutil.RMS(out) / testutil.RMS(in[skip:])
}

func TestLowpassPassesLowFrequencies(t *testing.T) {
	s := NewSection(Lowpass(1000, 0.707, testSampleRate))

	gain := measureGain(s, 100)
	if gain < 0.9 || gain > 1.1 {
		t.Errorf("lowpass gain at 100 Hz = %v, want ~1", gain)
	}
}

func TestLowpassAttenuatesHighFrequencies(t *testing.T) {
	s := NewSection(Lowpass(1000, 0.707, testSampleRate))

	gain := measureGain(s, 10000)
	if gain > 0.1 {
		t.Errorf("lowpass gain at 10 kHz = %v, want < 0.1", gain)
	}
}

func TestHighpassPassesHighFrequencies(t *testing.T) {
	s := NewSection(Highpass(1000, 0.707, testSampleRate))

	gain := measureGain(s, 10000)
	if gain < 0.9 || gain > 1.1 {
		t.Errorf("highpass gain at 10 kHz = %v, want ~1", gain)
	}
}

func TestHighpassAttenuatesLowFrequencies(t *testing.T) {
	s := NewSection(Highpass(1000, 0.707, testSampleRate))

	gain := measureGain(s, 100)
	if gain > 0.1 {
		t.Errorf("highpass gain at 100 Hz = %v, want < 0.1", gain)
	}
}

func TestAllpassPreservesMagnitude(t *testing.T) {
	for _, freq := range []float64{100, 500, 1000, 2000, 5000, 10000} {
		s := NewSection(Allpass(1000, 0.707, testSampleRate))

		gain := measureGain(s, freq)
		if gain < 0.95 || gain > 1.05 {
			t.Errorf("allpass gain at %v Hz = %v, want ~1", freq, gain)
		}
	}
}

func TestAllpassShiftsPhase(t *testing.T) {
	s := NewSection(Allpass(1000, 0.707, testSampleRate))

	// At the section center frequency the output must differ from the
	// input even though magnitude is preserved.
	in := testutil.DeterministicSine(1000, testSampleRate, 1.0, 4000)
	var diff float64
	for i, x := range in {
		y := s.Step(x)
		if i >= 1000 {
			diff += math.Abs(y - x)
		}
	}

	if diff/3000 < 0.1 {
		t.Errorf("allpass output tracks input too closely (mean diff %v), expected phase shift", diff/3000)
	}
}

func TestDesignClampsFrequency(t *testing.T) {
	// At or above Nyquist the design must still produce a stable,
	// finite filter rather than garbage coefficients.
	for _, freq := range []float64{0, -10, 24000, 96000} {
		s := NewSection(Lowpass(freq, 0.707, testSampleRate))
		for i := 0; i < 4000; i++ {
			y := s.Step(math.Sin(float64(i) * 0.1))
			if math.IsNaN(y) || math.IsInf(y, 0) {
				t.Fatalf("Lowpass(%v) produced non-finite output", freq)
			}
		}
	}
}

func TestDesignDefaultsQ(t *testing.T) {
	got := Lowpass(1000, 0, testSampleRate)
	want := Lowpass(1000, defaultQ, testSampleRate)
	if got != want {
		t.Errorf("Lowpass with q=0 = %+v, want Butterworth default %+v", got, want)
	}
}

func TestImpulseResponseDecays(t *testing.T) {
	s := NewSection(Lowpass(1000, 0.707, testSampleRate))

	var tail float64
	for i := 0; i < 48000; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		y := s.Step(x)
		if i > 40000 {
			tail = math.Max(tail, math.Abs(y))
		}
	}

	if tail > 1e-9 {
		t.Errorf("impulse response tail = %v, want decayed to ~0 (stable poles)", tail)
	}
}

func TestTapsFlushToZeroAfterDecay(t *testing.T) {
	s := NewSection(Lowpass(1000, 0.707, testSampleRate))

	// The impulse tail shrinks by a constant pole-radius factor per
	// sample; well before 8192 samples it is in denormal range and the
	// taps must land on exact zero instead of lingering there.
	for _, x := range testutil.Impulse(8192, 0) {
		s.Step(x)
	}

	if state := s.State(); state != [2]float64{} {
		t.Errorf("delay taps after impulse decay = %v, want exact zero", state)
	}
}

func TestChainCascadesSections(t *testing.T) {
	coeffs := []Coefficients{
		Lowpass(2000, 0.707, testSampleRate),
		Lowpass(2000, 0.707, testSampleRate),
	}
	chain := NewChain(coeffs)

	a := NewSection(coeffs[0])
	b := NewSection(coeffs[1])

	in := testutil.DeterministicNoise(7, 0.5, 512)
	for i, x := range in {
		want := b.Step(a.Step(x))
		got := chain.Step(x)
		if got != want {
			t.Fatalf("sample %d: chain = %v, manual cascade = %v", i, got, want)
		}
	}
}

func TestChainSteeperThanSingleSection(t *testing.T) {
	single := NewSection(Lowpass(1000, 0.707, testSampleRate))
	chain := NewChain([]Coefficients{
		Lowpass(1000, 0.707, testSampleRate),
		Lowpass(1000, 0.707, testSampleRate),
	})

	in := testutil.DeterministicSine(8000, testSampleRate, 1.0, 8000)
	var singleOut, chainOut []float64
	for i, x := range in {
		s := single.Step(x)
		c := chain.Step(x)
		if i >= 1000 {
			singleOut = append(singleOut, s)
			chainOut = append(chainOut, c)
		}
	}

	if testutil.RMS(chainOut) >= testutil.RMS(singleOut) {
		t.Errorf("two cascaded sections attenuate less than one (%v >= %v)",
			testutil.RMS(chainOut), testutil.RMS(singleOut))
	}
}

func TestUpdateCoefficientsPreservesState(t *testing.T) {
	chain := NewChain([]Coefficients{Lowpass(1000, 0.707, testSampleRate)})
	for i := 0; i < 100; i++ {
		chain.Step(0.5)
	}

	before := chain.Section(0).State()
	chain.UpdateCoefficients([]Coefficients{Lowpass(2000, 0.707, testSampleRate)})
	if chain.Section(0).State() != before {
		t.Error("same-size coefficient update must preserve delay taps")
	}

	chain.UpdateCoefficients([]Coefficients{
		Lowpass(2000, 0.707, testSampleRate),
		Highpass(100, 0.707, testSampleRate),
	})
	if chain.NumSections() != 2 {
		t.Fatalf("NumSections = %d, want 2", chain.NumSections())
	}
	if chain.Section(0).State() != [2]float64{} {
		t.Error("section-count change must reset state")
	}
}

func TestAllpassChain(t *testing.T) {
	freqs := []float64{100, 560, 2400, 9500}
	coeffs := AllpassChain(freqs, 0.7071, testSampleRate)
	if len(coeffs) != len(freqs) {
		t.Fatalf("len = %d, want %d", len(coeffs), len(freqs))
	}
	for i, c := range coeffs {
		if c != Allpass(freqs[i], 0.7071, testSampleRate) {
			t.Errorf("section %d differs from direct Allpass design", i)
		}
	}
}

func TestStepBlockMatchesStep(t *testing.T) {
	c := Lowpass(500, 1.2, testSampleRate)
	a := NewSection(c)
	b := NewSection(c)

	in := testutil.DeterministicNoise(11, 0.8, 300)
	buf := append([]float64(nil), in...)
	a.StepBlock(buf)
	for i, x := range in {
		if want := b.Step(x); buf[i] != want {
			t.Fatalf("sample %d: StepBlock = %v, Step = %v", i, buf[i], want)
		}
	}
}
