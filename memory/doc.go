// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the 15-bit addressed word store of the
// Synacor machine, and the sequential Cursor used to decode instructions
// out of it.
//
// Every access is bounds checked. There is no clamping or wrapping: an
// address outside 0..LAST_ADDRESS is an ErrBounds error.
package memory
