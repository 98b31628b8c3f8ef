// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/ezrec/synacor/memory"
)

// Disassemble returns an iterator over the listing of memory from address
// from up to, but not including, address to. Words that do not decode are
// listed as .word data.
func Disassemble(mem *memory.Memory, from, to int) iter.Seq2[int, string] {
	to = min(to, memory.MEMORY_SIZE)

	return func(yield func(addr int, line string) bool) {
		cur := mem.Cursor(from)
		for cur.Addr() < to {
			addr := cur.Addr()
			ins, err := Decode(&cur)
			var line string
			if err != nil || cur.Addr() > to {
				word, _ := mem.Read(addr)
				line = fmt.Sprintf(".word %d", word)
				cur.Jump(addr + 1)
			} else {
				line = ins.String()
				if ins.Op == OP_OUT && !ins.Args[0].IsRegister() {
					line += " ; " + strconv.QuoteRune(rune(byte(ins.Args[0])))
				}
			}
			if !yield(addr, line) {
				return
			}
		}
	}
}
