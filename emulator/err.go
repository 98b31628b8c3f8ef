// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/synacor/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrSnapshot  = errors.New(f("snapshot invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ticks  int // Instructions executed before the fault.
	LineNo int // Source line of the faulting instruction, if known.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d %v", err.LineNo, err.Err)
	}
	return f("tick %d %v", err.Ticks, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
