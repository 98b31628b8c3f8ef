// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the byte channels attached to the console of the
// Synacor machine. Tape adapts an io.Reader / io.Writer pair, and Script
// replays canned input ahead of another channel.
package io

// Channel defines the interface for the console channel. The in opcode
// reads from it, the out opcode writes to it.
type Channel interface {
	// ReadByte blocks until one byte of input is available.
	ReadByte() (value byte, err error)
	// WriteByte writes a single byte of output.
	WriteByte(value byte) error
}
