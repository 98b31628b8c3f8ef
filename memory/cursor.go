// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

// Cursor is a sequential read view into a Memory. It is only good for the
// duration of a single decode, and is never kept across instructions.
type Cursor struct {
	mem  *Memory
	addr int
}

// Addr returns the address of the next word to be read.
func (cur *Cursor) Addr() int {
	return cur.addr
}

// Peek returns the word at the cursor without moving it.
func (cur *Cursor) Peek() (value uint16, err error) {
	return cur.mem.Read(cur.addr)
}

// Advance returns the word at the cursor, then moves to the next address.
// The cursor does not move if the read fails.
func (cur *Cursor) Advance() (value uint16, err error) {
	value, err = cur.Peek()
	if err != nil {
		return
	}

	cur.addr++
	return
}

// Jump moves the cursor to addr.
func (cur *Cursor) Jump(addr int) {
	cur.addr = addr
}
