package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/synacor/memory"
)

func TestClassify(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint16{0, 1, 0x1234, 32767} {
		op, err := Classify(word)
		assert.NoError(err)
		assert.Equal(Literal(word), op)
		assert.False(op.IsRegister())
	}

	for n := range REGISTER_COUNT {
		op, err := Classify(uint16(32768 + n))
		assert.NoError(err)
		assert.Equal(Register(n), op)
		assert.True(op.IsRegister())
		assert.Equal(n, op.Index())
	}

	for _, word := range []uint16{32776, 40000, 0xffff} {
		_, err := Classify(word)
		assert.ErrorIs(err, ErrOperand(0))
		assert.Equal(ErrOperand(word), err)
	}
}

func TestOperand_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("65", Literal(65).String())
	assert.Equal("r0", Register(0).String())
	assert.Equal("r7", Register(7).String())
}

func TestOperand_GetSet(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	cpu.Register[3] = 0x1234

	assert.Equal(uint16(42), Literal(42).Get(cpu))
	assert.Equal(uint16(0x1234), Register(3).Get(cpu))

	assert.NoError(Register(5).Set(cpu, 99))
	assert.Equal(uint16(99), cpu.Register[5])

	assert.ErrorIs(Literal(5).Set(cpu, 99), ErrWriteLiteral)
}

func TestDecodeOperands(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	assert.NoError(mem.LoadWords([]uint16{0x1234, 0x5678, 0x8005, 0x9000}))

	cur := mem.Cursor(0)
	op, err := DecodeOperand(&cur)
	assert.NoError(err)
	assert.Equal(Literal(0x1234), op)

	ops, err := DecodeOperands(&cur, 2)
	assert.NoError(err)
	assert.Equal([]Operand{Literal(0x5678), Register(5)}, ops)
	assert.Equal(3, cur.Addr())

	_, err = DecodeOperand(&cur)
	assert.ErrorIs(err, ErrOperand(0))
}
