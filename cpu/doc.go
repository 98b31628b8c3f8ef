// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the processor and assembler for the Synacor machine.
//
// The CPU consists of an instruction pointer (IP), eight 15-bit registers
// (r0-r7), an unbounded stack and a halt flag, executing a fixed set of 22
// opcodes out of a 15-bit addressed memory. Every instruction is a leading
// opcode word followed by zero to three operand words; an operand word is
// either a literal (0..32767) or a register (32768..32775).
//
// Faults are never recovered from. The first one halts the CPU and is
// returned to the caller as an *ErrFault carrying the faulting IP.
//
// The assembler provides a small assembly language for the instruction set,
// supporting labels, equates, data words, and compile-time expression
// evaluation.
package cpu
