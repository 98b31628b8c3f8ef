// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strings"

	"github.com/ezrec/synacor/memory"
)

// Opcode is the leading word of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HALT = Opcode(0)  // halt
	OP_SET  = Opcode(1)  // set
	OP_PUSH = Opcode(2)  // push
	OP_POP  = Opcode(3)  // pop
	OP_EQ   = Opcode(4)  // eq
	OP_GT   = Opcode(5)  // gt
	OP_JMP  = Opcode(6)  // jmp
	OP_JT   = Opcode(7)  // jt
	OP_JF   = Opcode(8)  // jf
	OP_ADD  = Opcode(9)  // add
	OP_MULT = Opcode(10) // mult
	OP_MOD  = Opcode(11) // mod
	OP_AND  = Opcode(12) // and
	OP_OR   = Opcode(13) // or
	OP_NOT  = Opcode(14) // not
	OP_RMEM = Opcode(15) // rmem
	OP_WMEM = Opcode(16) // wmem
	OP_CALL = Opcode(17) // call
	OP_RET  = Opcode(18) // ret
	OP_OUT  = Opcode(19) // out
	OP_IN   = Opcode(20) // in
	OP_NOOP = Opcode(21) // noop

	OPCODE_COUNT = 22 // Number of defined opcodes.
)

// opcodeArity is the number of operand words following each opcode.
var opcodeArity = [OPCODE_COUNT]int{
	OP_HALT: 0,
	OP_SET:  2,
	OP_PUSH: 1,
	OP_POP:  1,
	OP_EQ:   3,
	OP_GT:   3,
	OP_JMP:  1,
	OP_JT:   2,
	OP_JF:   2,
	OP_ADD:  3,
	OP_MULT: 3,
	OP_MOD:  3,
	OP_AND:  3,
	OP_OR:   3,
	OP_NOT:  2,
	OP_RMEM: 2,
	OP_WMEM: 2,
	OP_CALL: 1,
	OP_RET:  0,
	OP_OUT:  1,
	OP_IN:   1,
	OP_NOOP: 0,
}

// Valid returns true if the opcode is one of the defined opcodes.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OPCODE_COUNT
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	return opcodeArity[op]
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	ops := make(map[string]Opcode, OPCODE_COUNT)
	for op := range Opcode(OPCODE_COUNT) {
		ops[op.String()] = op
	}
	return ops
}()

// Instruction is a decoded opcode and its operands.
type Instruction struct {
	Op   Opcode
	Args []Operand
}

// Len returns the number of words the instruction occupies.
func (ins Instruction) Len() int {
	return 1 + len(ins.Args)
}

// Words returns the encoding of the instruction.
func (ins Instruction) Words() (words []uint16) {
	words = append(words, uint16(ins.Op))
	for _, arg := range ins.Args {
		words = append(words, uint16(arg))
	}
	return
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	words := []string{ins.Op.String()}
	for _, arg := range ins.Args {
		words = append(words, arg.String())
	}

	return strings.Join(words, " ")
}

// Decode decodes a single instruction at the cursor, leaving the cursor
// just past the last operand. An unknown opcode consumes no operands.
func Decode(cur *memory.Cursor) (ins Instruction, err error) {
	word, err := cur.Advance()
	if err != nil {
		return
	}

	op := Opcode(word)
	if !op.Valid() {
		err = ErrOpcode(word)
		return
	}

	ins.Op = op
	if op.Arity() > 0 {
		ins.Args, err = DecodeOperands(cur, op.Arity())
		if err != nil {
			return
		}
	}

	return
}
