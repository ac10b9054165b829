package host

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParsePot parses a pot control message of the form "pNdd": 'p', one
// pot index digit 0-3, and a two-digit value mapped to 0.00-0.99.
func ParsePot(msg string) (index int, value float64, err error) {
	if len(msg) != 4 || msg[0] != 'p' {
		return 0, 0, fmt.Errorf("control message must be pNdd: %q", msg)
	}

	if msg[1] < '0' || msg[1] > '3' {
		return 0, 0, fmt.Errorf("pot index must be 0-3: %q", msg)
	}

	if msg[2] < '0' || msg[2] > '9' || msg[3] < '0' || msg[3] > '9' {
		return 0, 0, fmt.Errorf("pot value must be two digits: %q", msg)
	}

	index = int(msg[1] - '0')
	value = float64(int(msg[2]-'0')*10+int(msg[3]-'0')) / 100

	return index, value, nil
}

// Apply parses one control message and stores the result.
func (s *PotStore) Apply(msg string) error {
	index, value, err := ParsePot(msg)
	if err != nil {
		return err
	}

	return s.Set(index, value)
}

// ReadControls applies newline-delimited control messages from r until
// it is exhausted. Malformed messages are reported to diag (if non-nil)
// and dropped; a bad message must never stop the stream. The returned
// error is the reader's, not a message's.
func ReadControls(r io.Reader, s *PotStore, diag io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if err := s.Apply(line); err != nil && diag != nil {
			fmt.Fprintf(diag, "control: %v\n", err)
		}
	}

	return sc.Err()
}
