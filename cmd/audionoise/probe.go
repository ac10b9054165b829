package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/internal/measure"
)

const (
	probeWindow  = 4096
	probeSeconds = 2
)

// tailWriter keeps the most recent probeWindow output samples.
type tailWriter struct {
	ring  [probeWindow]float64
	pos   int
	count int
}

func (w *tailWriter) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) >= 4 {
		w.ring[w.pos] = core.SampleFromPCM(int32(binary.LittleEndian.Uint32(p)))
		w.pos = (w.pos + 1) % probeWindow
		w.count++
		p = p[4:]
	}

	return n, nil
}

func (w *tailWriter) tail() []float64 {
	out := make([]float64, probeWindow)
	for i := range out {
		out[i] = w.ring[(w.pos+i)%probeWindow]
	}

	return out
}

// probeRun processes up to two seconds of input and prints spectral
// diagnostics of the output instead of writing audio.
func probeRun(engine *host.Engine, src io.Reader, sampleRate float64) error {
	var tail tailWriter

	limit := int64(probeSeconds*sampleRate) * 4
	if err := engine.Run(&tail, io.LimitReader(src, limit)); err != nil {
		return err
	}

	if tail.count < probeWindow {
		return fmt.Errorf("probe needs at least %d output samples, got %d", probeWindow, tail.count)
	}

	freq, err := measure.DominantFrequency(tail.tail(), sampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s\ndominant %.1f Hz, last block peak %.1f dBFS\n",
		engine.Describe(), freq, engine.PeakDB())

	return nil
}
