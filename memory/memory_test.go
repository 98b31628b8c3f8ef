package memory

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Access(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	val, err := mem.Read(123)
	assert.NoError(err)
	assert.Equal(uint16(0), val)

	assert.NoError(mem.Write(123, 456))
	val, err = mem.Read(123)
	assert.NoError(err)
	assert.Equal(uint16(456), val)

	assert.NoError(mem.Write(LAST_ADDRESS, 0xffff))
	val, err = mem.Read(LAST_ADDRESS)
	assert.NoError(err)
	assert.Equal(uint16(0xffff), val)

	mem.Reset()
	val, _ = mem.Read(123)
	assert.Equal(uint16(0), val)
}

func TestMemory_Bounds(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	_, err := mem.Read(MEMORY_SIZE)
	assert.ErrorIs(err, ErrBounds{})
	var eb ErrBounds
	assert.True(errors.As(err, &eb))
	assert.False(eb.Write)
	assert.Equal(MEMORY_SIZE, eb.Addr)
	assert.Contains(err.Error(), "read")
	assert.Contains(err.Error(), "0x8000")
	assert.Contains(err.Error(), "0x7fff")

	err = mem.Write(MEMORY_SIZE+5, 1)
	assert.True(errors.As(err, &eb))
	assert.True(eb.Write)
	assert.Equal(MEMORY_SIZE+5, eb.Addr)
	assert.Contains(err.Error(), "write")

	_, err = mem.Read(-1)
	assert.ErrorIs(err, ErrBounds{})
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	count, err := mem.Load(bytes.NewReader([]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc}))
	assert.NoError(err)
	assert.Equal(3, count)

	assert.Equal(uint16(0x3412), mem.Data[0])
	assert.Equal(uint16(0x7856), mem.Data[1])
	assert.Equal(uint16(0xbc9a), mem.Data[2])
	assert.Equal(uint16(0), mem.Data[3])
}

func TestMemory_LoadOddByte(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	mem.Data[1] = 0x5555
	count, err := mem.Load(bytes.NewReader([]byte{0x15, 0x00, 0x13}))
	assert.NoError(err)
	assert.Equal(1, count)

	assert.Equal(uint16(0x0015), mem.Data[0])
	assert.Equal(uint16(0x5555), mem.Data[1])
}

type failReader struct {
	data []byte
}

var errFail = errors.New("disk on fire")

func (fr *failReader) Read(buff []byte) (n int, err error) {
	if len(fr.data) == 0 {
		err = errFail
		return
	}
	n = copy(buff, fr.data)
	fr.data = fr.data[n:]
	return
}

func TestMemory_LoadError(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	_, err := mem.Load(&failReader{data: []byte{1, 0, 2}})
	assert.ErrorIs(err, ErrLoad)
	assert.ErrorIs(err, errFail)
}

func TestMemory_LoadOversize(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	image := make([]byte, (MEMORY_SIZE+1)*2)
	count, err := mem.Load(io.MultiReader(bytes.NewReader(image)))
	assert.ErrorIs(err, ErrLoad)
	assert.ErrorIs(err, ErrBounds{})
	assert.Equal(MEMORY_SIZE, count)

	err = mem.LoadWords(make([]uint16, MEMORY_SIZE+1))
	assert.ErrorIs(err, ErrLoad)
}

func TestMemory_LoadWords(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.NoError(mem.LoadWords([]uint16{9, 32768, 32769, 4}))
	assert.Equal([]uint16{9, 32768, 32769, 4, 0}, mem.Data[:5])
}
