// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/synacor/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrWriteLiteral   = errors.New(f("invalid write to literal operand"))
	ErrModZero        = errors.New(f("modulo by zero"))
	ErrNoInstruction  = errors.New(f("no instruction to execute"))
	ErrChannelInvalid = errors.New(f("channel invalid"))
	ErrInputClosed    = errors.New(f("input channel closed"))
	ErrInput          = errors.New(f("input error"))
	ErrOutput         = errors.New(f("output error"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrStringSyntax       = errors.New(f(".string syntax"))
)

// ErrOpcode is an instruction word that is not a known opcode.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	return f("invalid opcode %#06x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrOperand is an operand word that is neither a literal nor a register.
type ErrOperand uint16

func (eo ErrOperand) Error() string {
	return f("invalid operand %#06x", uint16(eo))
}

func (eo ErrOperand) Is(err error) (ok bool) {
	_, ok = err.(ErrOperand)
	return
}

// ErrFault is a fatal error raised by the instruction at Ip.
type ErrFault struct {
	Ip  int
	Err error
}

func (err *ErrFault) Error() string {
	return f("ip %#06x: %v", err.Ip, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
