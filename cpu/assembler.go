// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/synacor/memory"
)

// Program is an assembled memory image.
type Program struct {
	Words  []uint16       // Image, loaded from address 0.
	Label  map[string]int // Map of labels to addresses.
	LineNo []int          // Source line of each word.
}

// Predefined system equates
var sysEquate = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", memory.MEMORY_SIZE),
	"VALUE_MASK":  fmt.Sprintf("%v", VALUE_MASK),
}

// regMap is a map of register names to operands.
var regMap = func() map[string]Operand {
	regs := make(map[string]Operand, REGISTER_COUNT)
	for n := range REGISTER_COUNT {
		regs[fmt.Sprintf("r%d", n)] = Register(n)
	}
	return regs
}()

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reLeadLabel = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):\s*`)
	reChar      = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
)

// fixup is a reference to a label that was not yet defined.
type fixup struct {
	addr   int
	label  string
	lineno int
	line   string
}

// Assembler is a single pass assembler for the Synacor machine.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	words  []uint16
	lineno []int
	fixups []fixup
}

// Predefine defines a new equate, or redefines an existing equate, for
// all future calls to Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a number, which may be negative.
func valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil || v64 < -VALUE_MODULUS || v64 > VALUE_MASK {
		err = ErrParseValue(word)
		return
	}

	value = uint16(v64 & VALUE_MASK)
	return
}

// parenEval does compile-time $(...) evaluations over the numeric equates
// and the labels defined so far.
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		equ, equ_err := valueOf(str)
		if equ_err != nil {
			// Ignore non-integer equates. They may be registers.
			continue
		}
		pred[key] = starlark.MakeInt(int(equ))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return valueOf(fmt.Sprintf("%d", st_int64))
}

// expand replaces character literals and $() expressions with numbers.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		}
		return fmt.Sprintf("%d", str[0])
	})

	out = reParen.ReplaceAllStringFunc(out, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// emit appends a word to the image.
func (asm *Assembler) emit(lineno int, words ...uint16) {
	for _, word := range words {
		asm.words = append(asm.words, word)
		asm.lineno = append(asm.lineno, lineno)
	}
}

// argument resolves an operand word. Undefined labels are linked later.
func (asm *Assembler) argument(word string, lineno int, line string) (value uint16, err error) {
	for range 8 {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}

	reg, ok := regMap[word]
	if ok {
		value = uint16(reg)
		return
	}

	value, err = valueOf(word)
	if err == nil {
		return
	}

	if !reLabel.MatchString(word) {
		return
	}
	err = nil

	addr, ok := asm.Label[word]
	if ok {
		value, err = valueOf(fmt.Sprintf("%d", addr))
		return
	}

	asm.fixups = append(asm.fixups, fixup{
		addr:   len(asm.words),
		label:  word,
		lineno: lineno,
		line:   line,
	})
	return
}

// stripComment removes a trailing ';' comment. A ';' inside a quoted
// string or character literal does not start a comment.
func stripComment(text string) string {
	var quote rune
	escaped := false
	for n, ch := range text {
		switch {
		case escaped:
			escaped = false
		case quote != 0 && ch == '\\':
			escaped = true
		case quote != 0 && ch == quote:
			quote = 0
		case quote != 0:
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ';':
			return text[:n]
		}
	}

	return text
}

// parseLine assembles a single line of text.
func (asm *Assembler) parseLine(text string, lineno int) (err error) {
	line := strings.TrimSpace(stripComment(text))

	for {
		match := reLeadLabel.FindStringSubmatch(line)
		if match == nil {
			break
		}
		label := match[1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.words)
		line = line[len(match[0]):]
	}

	// .string "text"
	if strings.HasPrefix(line, ".string") {
		var str string
		str, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, ".string")))
		if err != nil {
			err = ErrStringSyntax
			return
		}
		for _, ch := range []byte(str) {
			asm.emit(lineno, uint16(ch))
		}
		return
	}

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case ".equ":
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	case ".word":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value uint16
			value, err = asm.argument(word, lineno, text)
			if err != nil {
				return
			}
			asm.emit(lineno, value)
		}
		return
	}

	op, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Arity() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Arity() {
		err = ErrOpcodeExtraArgs
		return
	}

	asm.emit(lineno, uint16(op))
	for _, arg := range args {
		var value uint16
		value, err = asm.argument(arg, lineno, text)
		if err != nil {
			return
		}
		asm.emit(lineno, value)
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.words = nil
	asm.lineno = nil
	asm.fixups = nil

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for _, fix := range asm.fixups {
		addr, ok := asm.Label[fix.label]
		if !ok {
			lineno, line = fix.lineno, fix.line
			err = ErrLabelMissing(fix.label)
			return
		}
		asm.words[fix.addr] = uint16(addr)
	}

	if len(asm.words) > memory.MEMORY_SIZE {
		err = memory.ErrBounds{Write: true, Addr: len(asm.words) - 1}
		return
	}

	prog = &Program{
		Words:  asm.words,
		Label:  maps.Clone(asm.Label),
		LineNo: asm.lineno,
	}

	return
}
