// Command audionoise runs one effect over a raw PCM stream.
//
// Usage:
//
//	audionoise [flags] <effect> [pot0 pot1 pot2 pot3] [input [output]]
//
// Input and output are raw signed 32-bit little-endian mono PCM; "-"
// (the default) is stdin/stdout. Pot values are floats in [0, 1].
//
// Examples:
//
//	audionoise -list
//	audionoise tremolo 0.5 1 < in.pcm > out.pcm
//	audionoise -control /tmp/pots formant 0.8 0.2 1 1 in.pcm out.pcm
//	audionoise -play -tui braid 0.5 0.5 0.5 1 in.pcm
//	audionoise -play fm 0.5 0.3 0.8 1
//	audionoise -probe formant 1 1 1 1 in.pcm
//
// With -play the processed audio goes to the default output device
// instead of a file. With -tui (requires -play) the keyboard drives the
// pots in raw mode: 1/q, 2/w, 3/e, 4/r nudge pots 0-3 up/down and ESC
// quits; stdin is then the keyboard, so feed audio from a file or use a
// generator effect.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-fx/effects"
	"github.com/cwbudde/algo-fx/host"
)

var (
	rate        = flag.Float64("rate", 48000, "sample rate in Hz")
	controlPath = flag.String("control", "", "pipe or file of pNdd control lines")
	gain        = flag.Float64("gain", 1, "master output gain")
	play        = flag.Bool("play", false, "render to the default audio device")
	probe       = flag.Bool("probe", false, "print spectral diagnostics instead of writing audio")
	tui         = flag.Bool("tui", false, "keyboard pot control (requires -play)")
	list        = flag.Bool("list", false, "print available effects and exit")
)

func main() {
	flag.Parse()

	if *list {
		for _, name := range effects.Default().Names() {
			fmt.Println(name)
		}
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "audionoise:", err)
		os.Exit(1)
	}
}

// zeroReader is the silent input source for generator effects played
// without a file.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}

	return len(p), nil
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing effect name (try -list)")
	}

	if *tui && !*play {
		return errors.New("-tui requires -play")
	}

	pots := host.NewPotStore()

	rest := args[1:]
	for i := 0; i < host.NumPots && len(rest) > 0; i++ {
		v, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			break
		}

		if err := pots.Set(i, v); err != nil {
			return err
		}

		rest = rest[1:]
	}

	effect, err := effects.Default().New(args[0], *rate)
	if err != nil {
		return err
	}

	engine, err := host.NewEngine(effect, pots)
	if err != nil {
		return err
	}

	if err := engine.SetGain(*gain); err != nil {
		return err
	}

	inPath, outPath := "-", "-"
	switch {
	case len(rest) > 2:
		return fmt.Errorf("unexpected arguments: %v", rest[2:])
	case len(rest) == 2:
		inPath, outPath = rest[0], rest[1]
	case len(rest) == 1:
		inPath = rest[0]
	}

	if *controlPath != "" {
		go watchControls(*controlPath, pots)
	}

	var src io.Reader = os.Stdin
	if *tui && inPath == "-" {
		src = zeroReader{}
	}

	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	if *probe {
		return probeRun(engine, src, *rate)
	}

	if *play {
		return playLoop(engine, src, *rate, *tui)
	}

	var dst io.Writer = os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}

	fmt.Fprintln(os.Stderr, engine.Describe())

	return engine.Run(dst, src)
}

// watchControls feeds control messages into the pot store. The open
// happens here because opening a FIFO for reading blocks until a writer
// shows up.
func watchControls(path string, pots *host.PotStore) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "audionoise: control:", err)
		return
	}
	defer f.Close()

	if err := host.ReadControls(f, pots, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "audionoise: control:", err)
	}
}
