package emulator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/synacor/cpu"
	"github.com/ezrec/synacor/memory"
)

func doAssemble(t *testing.T, program []string) (prog *cpu.Program) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func doRun(emu *Emulator, program []string, input string, t *testing.T) (output []byte) {
	assert := assert.New(t)

	err := emu.LoadProgram(doAssemble(t, program))
	assert.NoError(err)

	emu.Tape.Input = strings.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	err = emu.Run(0)
	assert.NoError(err)
	assert.True(emu.Cpu.Halted)

	output = tape_output.Bytes()
	return
}

// echo copies input to output, upper-casing lower case letters, until '.'
var echoProgram = []string{
	"loop:  in r0",
	"       eq r1 r0 '.'",
	"       jt r1 done",
	"       gt r1 r0 $(0x61 - 1)",
	"       jf r1 emit",
	"       gt r1 r0 'z'",
	"       jt r1 emit",
	"       add r0 r0 -32",
	"emit:  out r0",
	"       jmp loop",
	"done:  out '\\n'",
	"       halt",
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Cpu.Memory)
	assert.Nil(emu.Program)
	assert.Equal(0, emu.LineNo())
}

func TestEmulator_Echo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := doRun(emu, echoProgram, "Hello, world.ignored", t)
	assert.Equal("HELLO, WORLD\n", string(output))
}

func TestEmulator_Script(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Script.Lines = []string{"abc"}
	echo := &bytes.Buffer{}
	emu.Script.Echo = echo

	output := doRun(emu, echoProgram, "xyz.", t)
	assert.Equal("ABC\nXYZ\n", string(output))
	assert.Equal("abc\n", echo.String())
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	count, err := emu.Load(bytes.NewReader([]byte{19, 0, 65, 0, 21, 0, 0, 0}))
	assert.NoError(err)
	assert.Equal(4, count)

	output := &bytes.Buffer{}
	emu.Tape.Output = output
	assert.NoError(emu.Run(0))
	assert.Equal("A", output.String())
}

func TestEmulator_LoadFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "challenge.bin")
	assert.NoError(os.WriteFile(path, []byte{0x15, 0x00, 0x15, 0x00, 0x13}, 0o644))

	emu := NewEmulator()
	count, err := emu.LoadFile(path)
	assert.NoError(err)
	assert.Equal(2, count)
	assert.Equal(uint16(0x15), emu.Cpu.Memory.Data[1])
	assert.Equal(uint16(0), emu.Cpu.Memory.Data[2])

	_, err = emu.LoadFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(err, memory.ErrLoad)
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestEmulator_Fault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.LoadProgram(doAssemble(t, []string{
		"noop",
		"noop",
		"pop r0",
	})))

	err := emu.Run(0)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)

	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(3, rt.LineNo)
	assert.Equal(3, rt.Ticks)
	assert.Contains(err.Error(), "line 3")

	var fault *cpu.ErrFault
	assert.True(errors.As(err, &fault))
	assert.Equal(2, fault.Ip)
}

func TestEmulator_StepLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.LoadProgram(doAssemble(t, []string{
		"loop: add r0 r0 1",
		"      jmp loop",
	})))

	err := emu.Run(10)
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(10, emu.Cpu.Ticks)
	assert.Equal(uint16(5), emu.Cpu.Register[0])
	assert.False(emu.Cpu.Halted)
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.LoadProgram(doAssemble(t, []string{"noop", "halt"})))

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(2, emu.LineNo())

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulator_Assemble(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	count, err := emu.Assemble(strings.NewReader("out 'A'\nnoop\npop r0\n"))
	assert.NoError(err)
	assert.Equal(5, count)
	assert.NotNil(emu.Program)

	output := &bytes.Buffer{}
	emu.Tape.Output = output
	err = emu.Run(0)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)
	assert.Contains(err.Error(), "line 3")
	assert.Equal("A", output.String())

	_, err = NewEmulator().Assemble(strings.NewReader("bogus r0\n"))
	var syntax cpu.ErrSyntax
	assert.True(errors.As(err, &syntax))
}

func TestEmulator_AssembleFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.asm")
	assert.NoError(os.WriteFile(path, []byte(".string \"hi; there\" ; greeting\n"), 0o644))

	emu := NewEmulator()
	count, err := emu.AssembleFile(path)
	assert.NoError(err)
	assert.Equal(9, count)
	assert.Equal(uint16(';'), emu.Cpu.Memory.Data[2])

	_, err = emu.AssembleFile(filepath.Join(dir, "missing.asm"))
	assert.ErrorIs(err, os.ErrNotExist)
}
