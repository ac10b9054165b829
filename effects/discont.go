package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/delay"
	"github.com/cwbudde/algo-fx/dsp/fastmath"
	"github.com/cwbudde/algo-fx/dsp/osc"
)

const (
	discontShift = 12
	discontSteps = 1 << discontShift
)

// Discont is a discontinuous pitch warbler: two delay taps sweep
// linearly through the history at a rate set by the step pot, and a
// squared-sine crossfade hands the output between them each time one
// tap resets. The result is a pitch-shifted signal with a periodic
// splice, audible as a mechanical warble.
//
// Pots: [0] sweep step per table slot, exponential taper. Zero is a
// wire. Pots 1-3 are unused.
type Discont struct {
	lfo  *osc.Oscillator
	line *delay.Line
	step float64
}

// NewDiscont creates a discont warbler at the given sample rate.
func NewDiscont(sampleRate float64) (*Discont, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("discont sample rate must be > 0 and finite: %f", sampleRate)
	}

	lfo, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	// The crossfade LFO steps half a table slot per sample, so one
	// full sweep covers the table once per 2*discontSteps samples.
	lfo.SetStep(1 << (31 - discontShift))

	line, err := delay.New(4 * discontSteps)
	if err != nil {
		return nil, err
	}

	return &Discont{lfo: lfo, line: line}, nil
}

// Name implements Effect.
func (d *Discont) Name() string { return "discont" }

// Describe implements Effect.
func (d *Discont) Describe(pots Pots) string {
	return fmt.Sprintf("step %.4f", fastmath.Pow2M1(pots[0]))
}

// Init derives parameters from the pots.
func (d *Discont) Init(pots Pots) {
	d.step = fastmath.Pow2M1(pots[0])
}

// Step processes one sample.
func (d *Discont) Step(in float64) float64 {
	// Tap indices come from the accumulator before it advances; the
	// extra left shift runs the taps at twice the crossfade rate.
	i := (d.lfo.Phase() << 1) >> (32 - discontShift)
	ni := (i + discontSteps/2) & (discontSteps - 1)

	fade := d.lfo.Step(osc.Sine)
	fade *= fade

	d.line.Write(in)

	lag := 2 * discontSteps * d.step
	a := d.line.ReadFractional(lag - float64(i)*d.step)
	b := d.line.ReadFractional(lag - float64(ni)*d.step)

	return a*fade + b*(1-fade)
}

// Reset clears the history and the sweep phase.
func (d *Discont) Reset() {
	d.line.Reset()
	d.lfo.Reset()
}
