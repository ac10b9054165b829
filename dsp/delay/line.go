// Package delay implements the interpolated circular sample history
// used by the time-based effects.
package delay

import (
	"fmt"
	"math"
)

// Line is a circular delay line with fractional readback.
//
// The maximum representable delay is bounded by the capacity; reads are
// clamped to the valid range before addressing, so an oversized lag
// returns the oldest valid pair instead of silently wrapping into
// unrelated samples.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed capacity.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the internal buffer capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write appends one sample, advancing the cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay steps ago. Read(0) is the most
// recently written sample. The delay is clamped to [0, Len()-1].
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 0 {
		delay = 0
	}

	if delay > size-1 {
		delay = size - 1
	}

	readPos := (d.writePos - 1 - delay + 2*size) % size

	return d.buffer[readPos]
}

// ReadFractional returns a linearly interpolated sample at a fractional
// lag. The lag is clamped to [0, Len()-2] so the two adjacent taps are
// always valid history.
func (d *Line) ReadFractional(delay float64) float64 {
	if delay < 0 {
		delay = 0
	}

	maxDelay := float64(len(d.buffer) - 2)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	frac := delay - float64(p)

	a := d.Read(p)
	b := d.Read(p + 1)

	return a + (b-a)*frac
}

// Reset clears the history to silence.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.writePos = 0
}
