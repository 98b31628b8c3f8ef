// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	synio "github.com/ezrec/synacor/io"
	"github.com/ezrec/synacor/memory"
)

// Channel is the console channel used by the in and out opcodes.
type Channel synio.Channel

// Cpu is the simulation context of the Synacor machine.
type Cpu struct {
	Log commonlog.Logger // Trace sink for executed instructions, or nil.

	Memory   *memory.Memory         // Word store, owned by the CPU.
	Console  Channel                // Console channel for in and out.
	Ip       int                    // Address of the next instruction.
	Register [REGISTER_COUNT]uint16 // Register bank.
	Stack    Stack                  // Stack simulation.
	Halted   bool                   // Set once execution has stopped.
	Fault    error                  // Error that halted the CPU, if any.

	Ticks int // Instructions executed.
}

// NewCpu creates a CPU running from mem, starting at address 0.
func NewCpu(mem *memory.Memory) (cpu *Cpu) {
	if mem == nil {
		mem = memory.NewMemory()
	}

	cpu = &Cpu{
		Memory: mem,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04x\n", "ip", cpu.Ip)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04x\n", fmt.Sprintf("r%d", n), val)
	}
	val, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 5s: %04x (%d)\n", "stack", val, cpu.Stack.Depth())
	} else {
		text += fmt.Sprintf("% 5s: ----\n", "stack")
	}
	text += fmt.Sprintf("% 5s: %v\n", "halt", cpu.Halted)

	return
}

// Fetch decodes the instruction at the instruction pointer, and advances
// the instruction pointer past it.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	cur := cpu.Memory.Cursor(cpu.Ip)
	ins, err = Decode(&cur)
	if err != nil {
		if errors.Is(err, memory.ErrBounds{}) {
			err = errors.Join(ErrNoInstruction, err)
		}
		return
	}

	cpu.Ip = cur.Addr()
	return
}

// Step executes a single instruction. Once halted, it does nothing.
// Any error halts the CPU for good, and is returned as an *ErrFault.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted {
		return
	}

	ip := cpu.Ip
	defer func() {
		if err != nil {
			err = &ErrFault{Ip: ip, Err: err}
			cpu.Halted = true
			cpu.Fault = err
		}
	}()

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Log != nil {
		cpu.Log.Debugf("%04x: %v", ip, ins)
	}

	cpu.Ticks++

	err = cpu.Execute(ins)
	return
}

// Run executes instructions until the CPU halts.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction. The instruction pointer
// must already be past the instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if !ins.Op.Valid() || len(ins.Args) != ins.Op.Arity() {
		err = ErrOpcode(ins.Op)
		return
	}

	args := ins.Args
	get := func(n int) uint16 { return args[n].Get(cpu) }
	set := func(value uint16) error { return args[0].Set(cpu, value) }
	flag := func(cond bool) error {
		if cond {
			return set(1)
		}
		return set(0)
	}

	switch ins.Op {
	case OP_HALT:
		cpu.Halted = true
	case OP_SET:
		err = set(get(1))
	case OP_PUSH:
		cpu.Stack.Push(get(0))
	case OP_POP:
		val, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		err = set(val)
	case OP_EQ:
		err = flag(get(1) == get(2))
	case OP_GT:
		err = flag(get(1) > get(2))
	case OP_JMP:
		cpu.Ip = int(get(0))
	case OP_JT:
		if get(0) != 0 {
			cpu.Ip = int(get(1))
		}
	case OP_JF:
		if get(0) == 0 {
			cpu.Ip = int(get(1))
		}
	case OP_ADD:
		err = set(uint16((uint32(get(1)) + uint32(get(2))) % VALUE_MODULUS))
	case OP_MULT:
		err = set(uint16((uint32(get(1)) * uint32(get(2))) % VALUE_MODULUS))
	case OP_MOD:
		if get(2) == 0 {
			err = ErrModZero
			return
		}
		err = set(get(1) % get(2))
	case OP_AND:
		err = set(get(1) & get(2))
	case OP_OR:
		err = set(get(1) | get(2))
	case OP_NOT:
		err = set(^get(1) & VALUE_MASK)
	case OP_RMEM:
		var val uint16
		val, err = cpu.Memory.Read(int(get(1)))
		if err != nil {
			return
		}
		err = set(val)
	case OP_WMEM:
		err = cpu.Memory.Write(int(get(0)), get(1))
	case OP_CALL:
		cpu.Stack.Push(uint16(cpu.Ip))
		cpu.Ip = int(get(0))
	case OP_RET:
		addr, ok := cpu.Stack.Pop()
		if !ok {
			cpu.Halted = true
			return
		}
		cpu.Ip = int(addr)
	case OP_OUT:
		if cpu.Console == nil {
			err = ErrChannelInvalid
			return
		}
		err = cpu.Console.WriteByte(byte(get(0)))
		if err != nil {
			err = errors.Join(ErrOutput, err)
		}
	case OP_IN:
		if cpu.Console == nil {
			err = ErrChannelInvalid
			return
		}
		var val byte
		val, err = cpu.Console.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrInputClosed
			return
		}
		if err != nil {
			err = errors.Join(ErrInput, err)
			return
		}
		err = set(uint16(val))
	case OP_NOOP:
		// pass
	}

	return
}
