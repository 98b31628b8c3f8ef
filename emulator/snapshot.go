// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/synacor/cpu"
	"github.com/ezrec/synacor/memory"
)

// Snapshot is the complete machine state. Memory is stored up to the last
// non-zero word.
type Snapshot struct {
	Memory   []uint16 `cbor:"1,keyasint"`
	Register []uint16 `cbor:"2,keyasint"`
	Stack    []uint16 `cbor:"3,keyasint"`
	Ip       int      `cbor:"4,keyasint"`
	Halted   bool     `cbor:"5,keyasint"`
	Ticks    int      `cbor:"6,keyasint"`
}

// cborEncMode is the canonical CBOR encoding, so identical machine states
// always produce identical snapshots.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("emulator: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot captures the current machine state.
func (emu *Emulator) Snapshot() (snap *Snapshot) {
	data := emu.Cpu.Memory.Data[:]
	last := len(data)
	for last > 0 && data[last-1] == 0 {
		last--
	}

	snap = &Snapshot{
		Memory:   append([]uint16(nil), data[:last]...),
		Register: append([]uint16(nil), emu.Cpu.Register[:]...),
		Stack:    append([]uint16(nil), emu.Cpu.Stack.Data...),
		Ip:       emu.Cpu.Ip,
		Halted:   emu.Cpu.Halted,
		Ticks:    emu.Cpu.Ticks,
	}

	return
}

// Restore replaces the machine state with a snapshot.
func (emu *Emulator) Restore(snap *Snapshot) (err error) {
	if len(snap.Memory) > memory.MEMORY_SIZE || len(snap.Register) != cpu.REGISTER_COUNT {
		err = ErrSnapshot
		return
	}

	mem := emu.Cpu.Memory
	mem.Reset()
	err = mem.LoadWords(snap.Memory)
	if err != nil {
		return
	}

	// A restored machine is a new CPU; a halted CPU is never resumed.
	next := cpu.NewCpu(mem)
	next.Log = emu.Cpu.Log
	next.Console = emu.Cpu.Console
	copy(next.Register[:], snap.Register)
	for _, val := range snap.Stack {
		next.Stack.Push(val)
	}
	next.Ip = snap.Ip
	next.Halted = snap.Halted
	next.Ticks = snap.Ticks
	emu.Cpu = next

	emu.infof("restored snapshot at ip %#04x", snap.Ip)
	return
}

// Save writes a CBOR snapshot of the machine state.
func (emu *Emulator) Save(output io.Writer) (err error) {
	data, err := cborEncMode.Marshal(emu.Snapshot())
	if err != nil {
		return
	}

	_, err = output.Write(data)
	return
}

// Resume reads a CBOR snapshot, and restores the machine state from it.
func (emu *Emulator) Resume(input io.Reader) (err error) {
	var snap Snapshot
	err = cbor.NewDecoder(input).Decode(&snap)
	if err != nil {
		err = errors.Join(ErrSnapshot, err)
		return
	}

	return emu.Restore(&snap)
}
