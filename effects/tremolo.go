package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/osc"
)

// Tremolo modulates the input amplitude with a sine LFO. At full depth
// the gain swings between 0 and 1; at zero depth the effect is a wire.
//
// Pots: [0] rate 0.5-10.5 Hz (squared taper for fine control at the
// low end), [1] depth. Pots 2 and 3 are unused.
type Tremolo struct {
	lfo   *osc.Oscillator
	depth float64
}

// NewTremolo creates a tremolo at the given sample rate.
func NewTremolo(sampleRate float64) (*Tremolo, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("tremolo sample rate must be > 0 and finite: %f", sampleRate)
	}

	lfo, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	return &Tremolo{lfo: lfo}, nil
}

// Name implements Effect.
func (t *Tremolo) Name() string { return "tremolo" }

// Describe implements Effect.
func (t *Tremolo) Describe(pots Pots) string {
	return fmt.Sprintf("rate %.2f Hz, depth %.2f", 0.5+pots[0]*pots[0]*10, pots[1])
}

// Init derives parameters from the pots.
func (t *Tremolo) Init(pots Pots) {
	t.lfo.SetFrequency(0.5 + pots[0]*pots[0]*10)
	t.depth = pots[1]
}

// Step processes one sample.
func (t *Tremolo) Step(in float64) float64 {
	mod := t.lfo.Step(osc.Sine)

	return in * (1 - t.depth*(1-mod)/2)
}

// Reset returns the LFO to phase zero.
func (t *Tremolo) Reset() {
	t.lfo.Reset()
}
