package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/host"
)

// engineStream adapts the engine to oto's pull model: each Read
// consumes PCM from the source, processes one block at a time, and
// hands back 32-bit float little-endian frames.
type engineStream struct {
	engine *host.Engine
	src    io.Reader

	raw     [host.BlockSize * 4]byte
	in      [host.BlockSize]int32
	out     [host.BlockSize]int32
	buf     [host.BlockSize * 4]byte
	pending []byte
	done    bool
}

func (s *engineStream) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if len(s.pending) == 0 {
			if s.done || s.fill() != nil {
				break
			}

			if len(s.pending) == 0 {
				break
			}
		}

		n := copy(p[total:], s.pending)
		s.pending = s.pending[n:]
		total += n
	}

	if total == 0 {
		return 0, io.EOF
	}

	return total, nil
}

func (s *engineStream) fill() error {
	n, readErr := io.ReadFull(s.src, s.raw[:])
	if readErr != nil {
		s.done = true
	}

	samples := n / 4
	if samples == 0 {
		return readErr
	}

	for i := 0; i < samples; i++ {
		s.in[i] = int32(binary.LittleEndian.Uint32(s.raw[4*i:]))
	}

	if err := s.engine.ProcessBlock(s.out[:samples], s.in[:samples]); err != nil {
		return err
	}

	for i := 0; i < samples; i++ {
		f := float32(core.SampleFromPCM(s.out[i]))
		binary.LittleEndian.PutUint32(s.buf[4*i:], math.Float32bits(f))
	}

	s.pending = s.buf[:samples*4]

	return nil
}

func playLoop(engine *host.Engine, src io.Reader, sampleRate float64, withTUI bool) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	player := ctx.NewPlayer(&engineStream{engine: engine, src: src})
	defer player.Close()
	player.Play()

	if withTUI {
		return tuiLoop(engine, player)
	}

	for player.IsPlaying() {
		fmt.Fprintf(os.Stderr, "\r%s  peak %6.1f dBFS ", engine.Describe(), engine.PeakDB())
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Fprintln(os.Stderr)

	return nil
}
