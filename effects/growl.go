package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/biquad"
	"github.com/cwbudde/algo-fx/dsp/fastmath"
)

// Threshold below which a sample passes the clipper unchanged.
const growlClipKnee = 0.05

// Growl is a harmonic distortion voiced from three parallel branches:
// a sub-octave alternator that flips the sign of the lowpassed input on
// alternating fundamental periods (a true half-frequency component), a
// hard clipper for odd harmonics, and a full-wave rectifier for even
// harmonics. The clipped and rectified branches run through the tone
// lowpass. Period boundaries come from positive-going crossings of the
// lowpassed copy, and the clip ceiling is latched from the previous
// period's peak so the clipper tracks playing dynamics.
//
// Pots: [0] sub-octave level, [1] odd harmonic level, [2] even harmonic
// level, [3] tone cutoff 100-6400 Hz, exponential taper.
type Growl struct {
	sampleRate float64

	subLevel  float64
	oddLevel  float64
	evenLevel float64

	crossLPF *biquad.Section
	toneOdd  *biquad.Section
	toneEven *biquad.Section

	parity     bool
	prevClean  float64
	periodPeak float64
	ceiling    float64
}

// NewGrowl creates a growl distortion at the given sample rate.
func NewGrowl(sampleRate float64) (*Growl, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("growl sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &Growl{
		sampleRate: sampleRate,
		crossLPF:   biquad.NewSection(biquad.Lowpass(300, 0.707, sampleRate)),
		toneOdd:    biquad.NewSection(biquad.Lowpass(100, 0.707, sampleRate)),
		toneEven:   biquad.NewSection(biquad.Lowpass(100, 0.707, sampleRate)),
	}, nil
}

// Name implements Effect.
func (g *Growl) Name() string { return "growl" }

// Describe implements Effect.
func (g *Growl) Describe(pots Pots) string {
	return fmt.Sprintf("sub %.2f, odd %.2f, even %.2f, tone %.0f Hz",
		pots[0], pots[1], pots[2], growlToneHz(pots[3]))
}

func growlToneHz(pot float64) float64 {
	return 100 * math.Exp2(6*pot)
}

// Init derives parameters from the pots. Swapping the tone coefficients
// keeps the filter taps, so mid-stream calls do not click.
func (g *Growl) Init(pots Pots) {
	g.subLevel = pots[0]
	g.oddLevel = pots[1]
	g.evenLevel = pots[2]

	tone := biquad.Lowpass(growlToneHz(pots[3]), 0.707, g.sampleRate)
	g.toneOdd.Coefficients = tone
	g.toneEven.Coefficients = tone
}

func (g *Growl) hardClip(x float64) float64 {
	switch {
	case x > growlClipKnee:
		return g.ceiling
	case x < -growlClipKnee:
		return -g.ceiling
	default:
		return x
	}
}

// Step processes one sample.
func (g *Growl) Step(in float64) float64 {
	clean := g.crossLPF.Step(in)

	if g.prevClean <= 0 && clean > 0 {
		g.parity = !g.parity
		g.ceiling = g.periodPeak
		g.periodPeak = 0
	}

	g.prevClean = clean

	if a := math.Abs(in); a > g.periodPeak {
		g.periodPeak = a
	}

	sub := clean
	if !g.parity {
		sub = -clean
	}

	odd := g.toneOdd.Step(g.hardClip(in))
	even := g.toneEven.Step(math.Abs(in))

	out := sub*g.subLevel + odd*g.oddLevel + even*g.evenLevel

	return fastmath.SoftLimit(out)
}

// Reset clears the filters and the period state.
func (g *Growl) Reset() {
	g.crossLPF.Reset()
	g.toneOdd.Reset()
	g.toneEven.Reset()
	g.parity = false
	g.prevClean = 0
	g.periodPeak = 0
	g.ceiling = 0
}
