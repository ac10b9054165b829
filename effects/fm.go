package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/fastmath"
	"github.com/cwbudde/algo-fx/dsp/osc"
)

// FM is a test-tone generator: a sine carrier whose frequency is swept
// up to one octave either way by a sine LFO. The input signal is
// ignored.
//
// Pots: [0] carrier 110-880 Hz, exponential taper, [1] LFO rate
// 0.5-10 Hz, [2] sweep depth in octaves, [3] output level 0.1-1.
type FM struct {
	carrier *osc.Oscillator
	lfo     *osc.Oscillator
	baseHz  float64
	depth   float64
	level   float64
}

// NewFM creates an FM generator at the given sample rate.
func NewFM(sampleRate float64) (*FM, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("fm generator sample rate must be > 0 and finite: %f", sampleRate)
	}

	carrier, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	lfo, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	f := &FM{carrier: carrier, lfo: lfo}
	f.Init(Pots{})

	return f, nil
}

// Name implements Effect.
func (f *FM) Name() string { return "fm" }

// Describe implements Effect.
func (f *FM) Describe(pots Pots) string {
	return fmt.Sprintf("carrier %.0f Hz, lfo %.2f Hz, depth %.2f oct, level %.2f",
		110*math.Exp2(3*pots[0]), 0.5+pots[1]*9.5, pots[2], 0.1+pots[3]*0.9)
}

// Init derives parameters from the pots.
func (f *FM) Init(pots Pots) {
	f.baseHz = 110 * math.Exp2(3*pots[0])
	f.lfo.SetFrequency(0.5 + pots[1]*9.5)
	f.depth = pots[2]
	f.level = 0.1 + pots[3]*0.9
}

// Step generates one sample; in is discarded.
func (f *FM) Step(in float64) float64 {
	_ = in

	mod := f.lfo.Step(osc.Sine)
	f.carrier.SetFrequency(f.baseHz * fastmath.Pow(2, f.depth*mod))

	return f.carrier.Step(osc.Sine) * f.level
}

// Reset returns both oscillators to phase zero.
func (f *FM) Reset() {
	f.carrier.Reset()
	f.lfo.Reset()
}
