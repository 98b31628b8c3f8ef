// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

const (
	MEMORY_SIZE  = 1 << 15         // Number of words in the address space.
	LAST_ADDRESS = MEMORY_SIZE - 1 // Highest valid address.
)

// Memory is the word store of the machine.
type Memory struct {
	Data [MEMORY_SIZE]uint16
}

// NewMemory creates a zeroed memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{}
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}

// Read returns the word at addr.
func (mem *Memory) Read(addr int) (value uint16, err error) {
	if addr < 0 || addr > LAST_ADDRESS {
		err = ErrBounds{Addr: addr}
		return
	}

	value = mem.Data[addr]
	return
}

// Write stores value at addr.
func (mem *Memory) Write(addr int, value uint16) (err error) {
	if addr < 0 || addr > LAST_ADDRESS {
		err = ErrBounds{Write: true, Addr: addr}
		return
	}

	mem.Data[addr] = value
	return
}

// Load fills memory from address 0 with little-endian words read from
// input, returning the number of words loaded. A final unpaired byte is
// dropped.
func (mem *Memory) Load(input io.Reader) (count int, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrLoad, err)
		}
	}()

	in := bufio.NewReader(input)

	var pair [2]byte
	for addr := 0; ; addr++ {
		_, err = io.ReadFull(in, pair[:])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = nil
			return
		}
		if err != nil {
			return
		}

		err = mem.Write(addr, binary.LittleEndian.Uint16(pair[:]))
		if err != nil {
			return
		}
		count++
	}
}

// LoadWords fills memory from address 0 with words.
func (mem *Memory) LoadWords(words []uint16) (err error) {
	for addr, word := range words {
		err = mem.Write(addr, word)
		if err != nil {
			err = errors.Join(ErrLoad, err)
			return
		}
	}

	return
}

// Cursor returns a decode cursor positioned at addr.
func (mem *Memory) Cursor(addr int) Cursor {
	return Cursor{mem: mem, addr: addr}
}
