// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"

	"github.com/ezrec/synacor/memory"
)

const (
	REGISTER_COUNT = 8                  // Number of registers.
	REGISTER_BASE  = memory.MEMORY_SIZE // Encoding of register r0.
	VALUE_MODULUS  = memory.MEMORY_SIZE // All arithmetic is modulo this.
	VALUE_MASK     = VALUE_MODULUS - 1  // Mask of a 15-bit value.
)

// Operand is an instruction argument, kept in its encoded form: values
// below REGISTER_BASE are literals, the following REGISTER_COUNT values
// are registers r0..r7.
type Operand uint16

// Literal creates a literal operand.
func Literal(value uint16) Operand {
	return Operand(value & VALUE_MASK)
}

// Register creates a register operand.
func Register(index int) Operand {
	return Operand(REGISTER_BASE + (index % REGISTER_COUNT))
}

// Classify converts a raw instruction word into an operand.
func Classify(word uint16) (op Operand, err error) {
	if int(word) >= REGISTER_BASE+REGISTER_COUNT {
		err = ErrOperand(word)
		return
	}

	op = Operand(word)
	return
}

// DecodeOperand decodes the operand at the cursor.
func DecodeOperand(cur *memory.Cursor) (op Operand, err error) {
	word, err := cur.Advance()
	if err != nil {
		return
	}

	return Classify(word)
}

// DecodeOperands decodes count operands in order.
func DecodeOperands(cur *memory.Cursor, count int) (ops []Operand, err error) {
	ops = make([]Operand, count)
	for n := range ops {
		ops[n], err = DecodeOperand(cur)
		if err != nil {
			ops = nil
			return
		}
	}

	return
}

// IsRegister returns true for register operands.
func (op Operand) IsRegister() bool {
	return int(op) >= REGISTER_BASE
}

// Index returns the register number of a register operand.
func (op Operand) Index() int {
	return int(op) - REGISTER_BASE
}

// Get resolves the operand against the CPU registers.
func (op Operand) Get(cpu *Cpu) uint16 {
	if op.IsRegister() {
		return cpu.Register[op.Index()]
	}

	return uint16(op)
}

// Set stores value in the register named by the operand.
func (op Operand) Set(cpu *Cpu, value uint16) (err error) {
	if !op.IsRegister() {
		err = ErrWriteLiteral
		return
	}

	cpu.Register[op.Index()] = value
	return
}

func (op Operand) String() string {
	if op.IsRegister() {
		return fmt.Sprintf("r%d", op.Index())
	}

	return fmt.Sprintf("%d", uint16(op))
}
