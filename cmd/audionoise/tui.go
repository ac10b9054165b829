package main

import (
	"fmt"
	"os"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	"github.com/cwbudde/algo-fx/host"
)

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
	potStep   = 0.05
)

// potKeys pairs each pot with an up/down key on the home rows:
// 1/q, 2/w, 3/e, 4/r.
var potKeys = map[byte]struct {
	pot   int
	delta float64
}{
	'1': {0, potStep}, 'q': {0, -potStep},
	'2': {1, potStep}, 'w': {1, -potStep},
	'3': {2, potStep}, 'e': {2, -potStep},
	'4': {3, potStep}, 'r': {3, -potStep},
}

// tuiLoop drives the pots from single keystrokes until ESC or the
// player stops. The terminal is in raw mode for the duration.
func tuiLoop(engine *host.Engine, player *oto.Player) error {
	fd := int(os.Stdin.Fd())

	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)

	fmt.Fprintf(os.Stderr, "keys: 1/q 2/w 3/e 4/r adjust pots, ESC quits\r\n")
	fmt.Fprintf(os.Stderr, "\r%s ", engine.Describe())

	buf := make([]byte, 1)
	for player.IsPlaying() {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}

		switch key := buf[0]; key {
		case keyEscape, keyCtrlC:
			fmt.Fprintf(os.Stderr, "\r\n")
			return nil
		default:
			binding, ok := potKeys[key]
			if !ok {
				continue
			}

			pots := engine.Pots()
			if err := pots.Set(binding.pot, pots.Get(binding.pot)+binding.delta); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "\r%s ", engine.Describe())
		}
	}

	return nil
}
