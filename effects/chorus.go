package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/delay"
	"github.com/cwbudde/algo-fx/dsp/osc"
	"github.com/cwbudde/algo-fx/dsp/smooth"
)

const chorusVoices = 3

// Slight rate detune per voice keeps the three sweeps from aligning.
var chorusDetune = [chorusVoices]float64{1, 1.1, 0.9}

// Chorus reads three modulated taps from a shared delay line and
// averages them into the wet signal.
//
// Pots: [0] sweep rate 0.1-5 Hz, [1] base delay 5-30 ms, [2] modulation
// depth, [3] dry/wet mix.
type Chorus struct {
	sampleRate float64

	depth float64
	mix   float64

	lfos      [chorusVoices]*osc.Oscillator
	line      *delay.Line
	baseDelay *smooth.Smoother
	primed    bool
}

// NewChorus creates a chorus at the given sample rate. The delay line
// holds 100 ms of history, comfortably above the deepest modulated tap.
func NewChorus(sampleRate float64) (*Chorus, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("chorus sample rate must be > 0 and finite: %f", sampleRate)
	}

	line, err := delay.New(int(sampleRate / 10))
	if err != nil {
		return nil, err
	}

	baseDelay, err := smooth.New(0, smooth.DefaultRate)
	if err != nil {
		return nil, err
	}

	c := &Chorus{
		sampleRate: sampleRate,
		line:       line,
		baseDelay:  baseDelay,
	}

	for i := range c.lfos {
		c.lfos[i], err = osc.New(sampleRate)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Name implements Effect.
func (c *Chorus) Name() string { return "chorus" }

// Describe implements Effect.
func (c *Chorus) Describe(pots Pots) string {
	return fmt.Sprintf("rate %.2f Hz, base delay %.1f ms, depth %.2f, mix %.2f",
		0.1+pots[0]*4.9, 5+pots[1]*25, pots[2], pots[3])
}

// Init derives parameters from the pots. The base delay is smoothed
// toward its new value sample by sample; only the very first call snaps
// it, before any history exists to click against.
func (c *Chorus) Init(pots Pots) {
	rate := 0.1 + pots[0]*4.9
	for i := range c.lfos {
		c.lfos[i].SetFrequency(rate * chorusDetune[i])
	}

	delayMs := 5 + pots[1]*25
	c.baseDelay.SetTarget(delayMs * c.sampleRate / 1000)

	if !c.primed {
		c.baseDelay.Snap()
		c.primed = true
	}

	c.depth = pots[2]
	c.mix = pots[3]
}

// Step processes one sample.
func (c *Chorus) Step(in float64) float64 {
	c.line.Write(in)

	base := c.baseDelay.Step()
	span := base * c.depth * 0.5

	var wet float64
	for i := range c.lfos {
		wet += c.line.ReadFractional(base + c.lfos[i].Step(osc.Sine)*span)
	}

	wet /= chorusVoices

	return core.Lerp(c.mix, in, wet)
}

// Reset clears the delay history and oscillator phases.
func (c *Chorus) Reset() {
	c.line.Reset()
	for i := range c.lfos {
		c.lfos[i].Reset()
	}
}
