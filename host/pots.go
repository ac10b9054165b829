// Package host drives an effect from a PCM stream: it owns the block
// cadence, the lock-free control store, and the control-message wire
// format.
package host

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fx/effects"
)

// NumPots is the number of control values an effect accepts.
const NumPots = 4

// PotStore is the shared control store between the control reader and
// the audio loop. Each pot is a float64 behind a word-atomic load and
// store; there is no ordering between pots. The audio loop snapshots
// the store once per block, so the staleness of any control change is
// bounded by one block (about 4 ms at 48 kHz) and a snapshot may mix
// values from two concurrent updates. That tearing is inaudible and
// accepted; what the atomics rule out is a torn float64.
type PotStore struct {
	words [NumPots]atomic.Uint64
}

// NewPotStore returns a store with all pots at zero.
func NewPotStore() *PotStore {
	return &PotStore{}
}

// Set stores one pot value, clamped to [0, 1].
func (s *PotStore) Set(index int, value float64) error {
	if index < 0 || index >= NumPots {
		return fmt.Errorf("pot index must be in [0, %d): %d", NumPots, index)
	}

	if math.IsNaN(value) {
		return fmt.Errorf("pot %d value must not be NaN", index)
	}

	if value < 0 {
		value = 0
	}

	if value > 1 {
		value = 1
	}

	s.words[index].Store(math.Float64bits(value))

	return nil
}

// Get loads one pot value.
func (s *PotStore) Get(index int) float64 {
	if index < 0 || index >= NumPots {
		return 0
	}

	return math.Float64frombits(s.words[index].Load())
}

// Snapshot loads all four pots. Each pot individually is a consistent
// float64; the vector as a whole may interleave with concurrent Sets.
func (s *PotStore) Snapshot() effects.Pots {
	var pots effects.Pots
	for i := range pots {
		pots[i] = math.Float64frombits(s.words[i].Load())
	}

	return pots
}
