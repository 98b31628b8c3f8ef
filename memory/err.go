// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"errors"

	"github.com/ezrec/synacor/translate"
)

var f = translate.From

var (
	ErrLoad = errors.New(f("load error"))
)

// ErrBounds is a memory access outside of the address space.
type ErrBounds struct {
	Write bool // Set if the access was a write.
	Addr  int  // Offending address.
}

func (err ErrBounds) Error() string {
	if err.Write {
		return f("write memory access out of bounds (%#06x > %#06x)", err.Addr, LAST_ADDRESS)
	}
	return f("read memory access out of bounds (%#06x > %#06x)", err.Addr, LAST_ADDRESS)
}

func (err ErrBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrBounds)
	return
}
