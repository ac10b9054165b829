package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/biquad"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/fastmath"
	"github.com/cwbudde/algo-fx/dsp/osc"
	"github.com/cwbudde/algo-fx/dsp/track"
)

const (
	braidOscCount = 5
	braidNudge    = 0.001
	braidMinHz    = 20.0
	braidMaxHz    = 16000.0
)

// Frequency ratios of the bank relative to the tracked fundamental:
// sub-octave, fundamental, then three overtones.
var braidRatios = [braidOscCount]float64{0.5, 1, 2, 3, 4}

// HarmonicBraid resynthesizes the input as a bank of five sine
// oscillators braided onto the tracked fundamental. Oscillators
// adjacent in the bank order pull on each other with a weak
// Kuramoto-style phase coupling, so the bank drifts between loose and
// locked depending on the coupling pot.
//
// Pots: [0] coupling strength, [1] sub-oscillator level, [2] overtone
// brightness, [3] dry/wet blend.
type HarmonicBraid struct {
	sampleRate float64

	coupling   float64
	subLevel   float64
	brightness float64
	blend      float64

	amp   *track.AmplitudeFollower
	pitch *track.PitchTracker

	oscs  [braidOscCount]*osc.Oscillator
	phase [braidOscCount]float64

	subLPF    *biquad.Section
	brightHPF *biquad.Section
}

// NewHarmonicBraid creates a braid resynthesizer at the given sample
// rate. The bank is primed at the tracker's default fundamental with
// phases spread evenly so the unlocked bank does not start as a click.
func NewHarmonicBraid(sampleRate float64) (*HarmonicBraid, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("harmonic braid sample rate must be > 0 and finite: %f", sampleRate)
	}

	amp, err := track.NewAmplitudeFollower(sampleRate)
	if err != nil {
		return nil, err
	}

	pitch, err := track.NewPitchTracker(sampleRate)
	if err != nil {
		return nil, err
	}

	b := &HarmonicBraid{
		sampleRate: sampleRate,
		amp:        amp,
		pitch:      pitch,
		subLPF:     biquad.NewSection(biquad.Lowpass(300, 0.707, sampleRate)),
		brightHPF:  biquad.NewSection(biquad.Highpass(800, 0.707, sampleRate)),
	}

	for i := range b.oscs {
		b.oscs[i], err = osc.New(sampleRate)
		if err != nil {
			return nil, err
		}
	}

	b.primeBank()

	return b, nil
}

func (b *HarmonicBraid) primeBank() {
	for i := range b.oscs {
		b.phase[i] = float64(i) / braidOscCount
		b.oscs[i].SetPhase(fastmath.FractionToUint32(b.phase[i]))
		b.oscs[i].SetFrequency(core.Clamp(b.pitch.Frequency()*braidRatios[i], braidMinHz, braidMaxHz))
	}
}

// Name implements Effect.
func (b *HarmonicBraid) Name() string { return "braid" }

// Describe implements Effect.
func (b *HarmonicBraid) Describe(pots Pots) string {
	return fmt.Sprintf("coupling %.2f, sub level %.2f, brightness %.2f, blend %.2f",
		pots[0], pots[1], pots[2], pots[3])
}

// Init derives parameters from the pots. The trackers and oscillator
// phases keep running, so mid-stream calls do not click.
func (b *HarmonicBraid) Init(pots Pots) {
	b.coupling = pots[0]
	b.subLevel = pots[1]
	b.brightness = pots[2]
	b.blend = pots[3]
}

// Step processes one sample.
func (b *HarmonicBraid) Step(in float64) float64 {
	amp := b.amp.Step(in)
	freq := b.pitch.Step(in, amp)

	// Retune the bank, then let chain neighbors pull each oscillator's
	// accumulator a fraction of a cycle toward phase agreement. The
	// chain does not wrap: the end oscillators have one neighbor each.
	// The shadow phases are refreshed after stepping so the next
	// sample's pull sees the post-step positions.
	for i := range b.oscs {
		b.oscs[i].SetFrequency(core.Clamp(freq*braidRatios[i], braidMinHz, braidMaxHz))

		var pull float64
		if i > 0 {
			pull += math.Sin(2 * math.Pi * (b.phase[i-1] - b.phase[i]))
		}

		if i < braidOscCount-1 {
			pull += math.Sin(2 * math.Pi * (b.phase[i+1] - b.phase[i]))
		}

		nudge := b.coupling * pull * braidNudge
		b.oscs[i].OffsetPhase(nudge)
	}

	var bank [braidOscCount]float64
	for i := range b.oscs {
		bank[i] = b.oscs[i].Step(osc.Sine)
		b.phase[i] = b.oscs[i].PhaseFraction()
	}

	sub := b.subLPF.Step(bank[0] * amp * b.subLevel)
	fund := bank[1] * amp * 0.3
	bright := b.brightHPF.Step((0.5*bank[2] + 0.3*bank[3] + 0.2*bank[4]) * amp * b.brightness)

	wet := fastmath.SoftLimit(sub + fund + bright)

	return core.Lerp(b.blend, in, wet)
}

// Reset clears the trackers and re-primes the oscillator bank.
func (b *HarmonicBraid) Reset() {
	b.amp.Reset()
	b.pitch.Reset()
	b.subLPF.Reset()
	b.brightHPF.Reset()
	b.primeBank()
}
