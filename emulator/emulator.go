// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator ties the Synacor CPU, its memory and its console
// together, and adds image loading, bounded runs and snapshots.
package emulator

import (
	"errors"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/ezrec/synacor/cpu"
	synio "github.com/ezrec/synacor/io"
	"github.com/ezrec/synacor/memory"
)

// Emulator state. CPU + memory + console channels.
type Emulator struct {
	Logger   commonlog.Logger // Logger for emulator events, or nil.
	*cpu.Cpu                  // Reference to the CPU simulation.
	Program  *cpu.Program     // Assembled listing of the image, if any.

	Tape   synio.Tape   // Live console.
	Script synio.Script // Scripted input, replayed ahead of the Tape.
}

// NewEmulator creates a new emulator with empty memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(memory.NewMemory()),
	}

	emu.Script.Live = &emu.Tape
	emu.Cpu.Console = &emu.Script

	return
}

func (emu *Emulator) infof(format string, args ...any) {
	if emu.Logger != nil {
		emu.Logger.Infof(format, args...)
	}
}

// Load loads a little-endian program image, returning the number of words.
func (emu *Emulator) Load(input io.Reader) (count int, err error) {
	count, err = emu.Cpu.Memory.Load(input)
	if err != nil {
		return
	}

	emu.infof("loaded %d words", count)
	return
}

// LoadFile loads a program image from a file.
func (emu *Emulator) LoadFile(path string) (count int, err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Join(memory.ErrLoad, err)
		return
	}
	defer inf.Close()

	emu.infof("image %v", path)
	return emu.Load(inf)
}

// LoadProgram loads an assembled program, and keeps its listing for
// error reporting.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	err = emu.Cpu.Memory.LoadWords(prog.Words)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Assemble assembles source text and loads the result, returning the
// number of words.
func (emu *Emulator) Assemble(input io.Reader) (count int, err error) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	err = emu.LoadProgram(prog)
	if err != nil {
		return
	}

	count = len(prog.Words)
	emu.infof("assembled %d words", count)
	return
}

// AssembleFile assembles a source file and loads the result.
func (emu *Emulator) AssembleFile(path string) (count int, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	emu.infof("source %v", path)
	return emu.Assemble(inf)
}

// LineNo returns the source line of the instruction at the instruction
// pointer, or 0 if there is no listing for it.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil || emu.Cpu.Ip < 0 || emu.Cpu.Ip >= len(emu.Program.LineNo) {
		return 0
	}

	return emu.Program.LineNo[emu.Cpu.Ip]
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ticks: emu.Cpu.Ticks, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	done = emu.Cpu.Halted
	return
}

// Run runs until the CPU halts, or until maxSteps instructions have been
// executed. A maxSteps of 0 does not limit the run.
func (emu *Emulator) Run(maxSteps int) (err error) {
	for steps := 0; maxSteps == 0 || steps < maxSteps; steps++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	if !emu.Cpu.Halted {
		err = ErrStepLimit
	}

	return
}
