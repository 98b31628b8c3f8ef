package io

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_ReadByte(t *testing.T) {
	assert := assert.New(t)

	input := bytes.NewReader([]byte("hi"))
	tc := &Tape{Input: input}

	val, err := tc.ReadByte()
	assert.NoError(err)
	assert.Equal(byte('h'), val)
	assert.Equal(1, input.Len())

	val, err = tc.ReadByte()
	assert.NoError(err)
	assert.Equal(byte('i'), val)

	_, err = tc.ReadByte()
	assert.ErrorIs(err, io.EOF)
}

func TestTape_NoInput(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{}
	_, err := tc.ReadByte()
	assert.ErrorIs(err, io.EOF)

	assert.NoError(tc.WriteByte('x'))
}

func TestTape_WriteByte(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tc := &Tape{Output: output}

	assert.NoError(tc.WriteByte('A'))
	assert.NoError(tc.WriteByte(0x00))
	assert.Equal([]byte{0x41, 0x00}, output.Bytes())
}

type brokenWriter struct{}

var errBroken = errors.New("broken pipe")

func (brokenWriter) Write(buff []byte) (int, error) {
	return 0, errBroken
}

func TestTape_WriteError(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{Output: brokenWriter{}}
	assert.ErrorIs(tc.WriteByte('A'), errBroken)
}
