package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/osc"
)

// AM is a test-tone generator: a sine carrier amplitude-modulated by a
// sine LFO. The input signal is ignored.
//
// Pots: [0] carrier 110-880 Hz, exponential taper, [1] LFO rate
// 0.5-10 Hz, [2] modulation depth, [3] output level 0.1-1.
type AM struct {
	carrier *osc.Oscillator
	lfo     *osc.Oscillator
	depth   float64
	level   float64
}

// NewAM creates an AM generator at the given sample rate.
func NewAM(sampleRate float64) (*AM, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("am generator sample rate must be > 0 and finite: %f", sampleRate)
	}

	carrier, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	lfo, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	a := &AM{carrier: carrier, lfo: lfo}
	a.Init(Pots{})

	return a, nil
}

// Name implements Effect.
func (a *AM) Name() string { return "am" }

// Describe implements Effect.
func (a *AM) Describe(pots Pots) string {
	return fmt.Sprintf("carrier %.0f Hz, lfo %.2f Hz, depth %.2f, level %.2f",
		110*math.Exp2(3*pots[0]), 0.5+pots[1]*9.5, pots[2], 0.1+pots[3]*0.9)
}

// Init derives parameters from the pots.
func (a *AM) Init(pots Pots) {
	a.carrier.SetFrequency(110 * math.Exp2(3*pots[0]))
	a.lfo.SetFrequency(0.5 + pots[1]*9.5)
	a.depth = pots[2]
	a.level = 0.1 + pots[3]*0.9
}

// Step generates one sample; in is discarded.
func (a *AM) Step(in float64) float64 {
	_ = in

	mod := a.lfo.Step(osc.Sine)

	return a.carrier.Step(osc.Sine) * (1 - a.depth*(1-mod)/2) * a.level
}

// Reset returns both oscillators to phase zero.
func (a *AM) Reset() {
	a.carrier.Reset()
	a.lfo.Reset()
}
