// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"io"
)

// Tape provides sequential byte I/O over an io.Reader for input and an
// io.Writer for output. Input is read one byte at a time, so nothing past
// the requested byte is consumed from the reader.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

var _ Channel = (*Tape)(nil)

// ReadByte reads the next byte of input. A missing input is at io.EOF.
func (tc *Tape) ReadByte() (value byte, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}

	var one [1]byte
	for {
		var n int
		n, err = tc.Input.Read(one[:])
		if n == 1 {
			value = one[0]
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// WriteByte writes a byte to the output. A missing output discards it.
func (tc *Tape) WriteByte(value byte) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = tc.Output.Write([]byte{value})
	return
}
