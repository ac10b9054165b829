package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/effects"
)

// BlockSize is the control cadence in samples: pots are snapshotted and
// the effect re-initialized once per block. At 48 kHz a block is about
// 4 ms, fast enough that knob moves feel continuous.
const BlockSize = 200

// Engine runs one effect over a 32-bit signed PCM stream. The audio
// path is single-threaded; the only cross-thread traffic is the pot
// store, which control readers write from their own goroutines.
type Engine struct {
	effect effects.Effect
	pots   *PotStore
	gain   float64

	scratch [BlockSize]float64
	peak    float64
}

// NewEngine creates an engine around an effect. A nil pot store gets a
// private one, reachable via Pots.
func NewEngine(effect effects.Effect, pots *PotStore) (*Engine, error) {
	if effect == nil {
		return nil, errors.New("engine requires an effect")
	}

	if pots == nil {
		pots = NewPotStore()
	}

	return &Engine{effect: effect, pots: pots, gain: 1}, nil
}

// Pots returns the control store the engine snapshots each block.
func (e *Engine) Pots() *PotStore {
	return e.pots
}

// SetGain sets the master output gain applied after the effect.
func (e *Engine) SetGain(gain float64) error {
	if gain < 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("gain must be >= 0 and finite: %f", gain)
	}

	e.gain = gain

	return nil
}

// Describe formats the effect's current parameter derivation.
func (e *Engine) Describe() string {
	return fmt.Sprintf("%s: %s", e.effect.Name(), e.effect.Describe(e.pots.Snapshot()))
}

// ProcessBlock runs src through the effect into dst. Both slices must
// have the same length; any length is accepted and chunked internally
// on the control cadence. The block peak meter covers the whole call.
func (e *Engine) ProcessBlock(dst, src []int32) error {
	if len(dst) != len(src) {
		return fmt.Errorf("block length mismatch: dst %d, src %d", len(dst), len(src))
	}

	e.peak = 0

	for base := 0; base < len(src); base += BlockSize {
		end := base + BlockSize
		if end > len(src) {
			end = len(src)
		}

		e.effect.Init(e.pots.Snapshot())

		block := e.scratch[:end-base]
		for i, s := range src[base:end] {
			block[i] = e.effect.Step(core.SampleFromPCM(s))
		}

		vecmath.ScaleBlock(block, block, e.gain)

		for i, v := range block {
			if a := math.Abs(v); a > e.peak {
				e.peak = a
			}

			dst[base+i] = core.SampleToPCM(v)
		}
	}

	return nil
}

// Peak returns the largest post-gain sample magnitude of the last
// ProcessBlock call, in linear full-scale units.
func (e *Engine) Peak() float64 {
	return e.peak
}

// PeakDB returns the last block peak in dBFS.
func (e *Engine) PeakDB() float64 {
	return core.LinearToDB(e.peak)
}

// Run streams little-endian 32-bit signed PCM from src through the
// effect to dst until end of input. A trailing partial sample is
// discarded.
func (e *Engine) Run(dst io.Writer, src io.Reader) error {
	raw := make([]byte, BlockSize*4)

	var in, out [BlockSize]int32

	for {
		n, err := io.ReadFull(src, raw)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return err
		}

		samples := n / 4
		if samples > 0 {
			for i := 0; i < samples; i++ {
				in[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
			}

			if perr := e.ProcessBlock(out[:samples], in[:samples]); perr != nil {
				return perr
			}

			for i := 0; i < samples; i++ {
				binary.LittleEndian.PutUint32(raw[4*i:], uint32(out[i]))
			}

			if _, werr := dst.Write(raw[:4*samples]); werr != nil {
				return werr
			}
		}

		if err != nil {
			return nil
		}
	}
}
