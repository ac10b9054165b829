package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/biquad"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/fastmath"
)

// Allpass center frequencies for the two branches of the 90 degree
// phase-difference network. Four sections per branch keeps the phase
// quadrature within a few degrees across the speech band.
var (
	formantCentersI = []float64{100, 560, 2400, 9500}
	formantCentersQ = []float64{170, 960, 4300, 15500}
)

const formantAllpassQ = 0.7071

// FormantShifter resynthesizes the input from its analytic envelope and
// a rescaled instantaneous phase, shifting perceived pitch while the
// envelope (and with it the formant structure) follows the input.
//
// Pots: [0] pitch ratio 0.5x-2x, [1] envelope smoothing, [2] dry/wet
// blend, [3] formant strength (how far the phase ratio is applied).
type FormantShifter struct {
	sampleRate float64

	pitchRatio float64
	envSmooth  float64
	blend      float64
	strength   float64

	branchI *biquad.Chain
	branchQ *biquad.Chain

	envelope  float64
	prevPhase float64
	outPhase  float64
}

// NewFormantShifter creates a formant shifter at the given sample rate.
func NewFormantShifter(sampleRate float64) (*FormantShifter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("formant shifter sample rate must be > 0 and finite: %f", sampleRate)
	}

	f := &FormantShifter{
		sampleRate: sampleRate,
		branchI:    biquad.NewChain(biquad.AllpassChain(formantCentersI, formantAllpassQ, sampleRate)),
		branchQ:    biquad.NewChain(biquad.AllpassChain(formantCentersQ, formantAllpassQ, sampleRate)),
		pitchRatio: 1,
	}

	return f, nil
}

// Name implements Effect.
func (f *FormantShifter) Name() string { return "formant" }

// Describe implements Effect.
func (f *FormantShifter) Describe(pots Pots) string {
	return fmt.Sprintf("pitch ratio %.2fx, envelope smoothing %.3f, blend %.2f, strength %.2f",
		core.Lerp(pots[0], 0.5, 2.0), 0.001+pots[1]*0.05, pots[2], pots[3])
}

// Init derives parameters from the pots. The analytic branches and the
// running envelope and phase survive, so mid-stream calls do not click.
func (f *FormantShifter) Init(pots Pots) {
	f.pitchRatio = core.Lerp(pots[0], 0.5, 2.0)
	f.envSmooth = 0.001 + pots[1]*0.05
	f.blend = pots[2]
	f.strength = pots[3]
}

// Step processes one sample.
func (f *FormantShifter) Step(in float64) float64 {
	si := f.branchI.Step(in)
	sq := f.branchQ.Step(in)

	env := math.Sqrt(si*si + sq*sq)
	f.envelope += f.envSmooth * (env - f.envelope)

	phase := math.Atan2(sq, si)

	dphase := phase - f.prevPhase
	f.prevPhase = phase

	if dphase > math.Pi {
		dphase -= 2 * math.Pi
	} else if dphase <= -math.Pi {
		dphase += 2 * math.Pi
	}

	ratio := core.Lerp(f.strength, 1, f.pitchRatio)

	f.outPhase += dphase * ratio
	if f.outPhase > math.Pi {
		f.outPhase -= 2 * math.Pi
	} else if f.outPhase <= -math.Pi {
		f.outPhase += 2 * math.Pi
	}

	wet := fastmath.SoftLimit(f.envelope * math.Cos(f.outPhase))

	return core.Lerp(f.blend, in, wet)
}

// Reset clears all running state.
func (f *FormantShifter) Reset() {
	f.branchI.Reset()
	f.branchQ.Reset()
	f.envelope = 0
	f.prevPhase = 0
	f.outPhase = 0
}
