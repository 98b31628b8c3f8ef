// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"io"
	"strings"
)

// Script replays lines of canned input, then defers to Live.
// Output always goes to Live.
type Script struct {
	Lines []string  // Lines still to be replayed, without newlines.
	Live  Channel   // Channel used once the script is exhausted.
	Echo  io.Writer // If set, replayed input is copied here.

	pending []byte
}

var _ Channel = (*Script)(nil)

// LoadScript appends the lines of input to the script. Blank lines and
// lines starting with '#' are skipped.
func (sc *Script) LoadScript(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(strings.TrimSpace(line)) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		sc.Lines = append(sc.Lines, line)
	}

	err = scanner.Err()
	return
}

// ReadByte returns the next scripted byte, or reads from Live.
func (sc *Script) ReadByte() (value byte, err error) {
	if len(sc.pending) == 0 && len(sc.Lines) > 0 {
		line := []byte(sc.Lines[0] + "\n")
		if sc.Echo != nil {
			_, err = sc.Echo.Write(line)
			if err != nil {
				return
			}
		}
		sc.pending = line
		sc.Lines = sc.Lines[1:]
	}

	if len(sc.pending) > 0 {
		value = sc.pending[0]
		sc.pending = sc.pending[1:]
		return
	}

	if sc.Live == nil {
		err = io.EOF
		return
	}

	return sc.Live.ReadByte()
}

// WriteByte writes to Live.
func (sc *Script) WriteByte(value byte) (err error) {
	if sc.Live == nil {
		return
	}

	return sc.Live.WriteByte(value)
}
