// Package asm is a minimal line-oriented text assembler that builds a
// code.Object through the builder contract of spec.md §4.C:
//
//	LOAD_CONST 0
//	LOAD_CONST 1
//	BINARY_ADD
//	RETURN_VALUE
//
// One mnemonic per line, optional whitespace-separated integer argument,
// blank lines and "#"-prefixed comments ignored. .const and .name
// directives seed the constant/name pools ahead of the instructions that
// reference them by index:
//
//	.const int 10
//	.const str "hello"
//	.name x
//
// This is the inverse of internal/code.Object.Disassemble and is used by
// cmd/pkvm and by tests to construct code objects without writing a full
// source-language compiler, which spec.md §1 explicitly excludes from
// this repo's scope.
package asm

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"pkvm/internal/code"
	"pkvm/internal/opcode"
	"pkvm/internal/value"
)

// Assemble parses src into a new code object named name/filename.
func Assemble(filename, name, src string) (*code.Object, error) {
	obj := code.New(filename, name)
	scanner := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, ".const") {
			if err := assembleConst(obj, text); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}
		if strings.HasPrefix(text, ".name") {
			fields := strings.Fields(text)
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: .name requires exactly one identifier", line)
			}
			obj.AddName(fields[1])
			continue
		}
		if err := assembleInstruction(obj, text, uint16(line)); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

func assembleConst(obj *code.Object, text string) error {
	fields := strings.SplitN(text, " ", 3)
	if len(fields) < 2 {
		return fmt.Errorf("malformed .const directive: %q", text)
	}
	kind := strings.TrimSpace(fields[1])
	var rest string
	if len(fields) == 3 {
		rest = strings.TrimSpace(fields[2])
	}
	switch kind {
	case "int":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return fmt.Errorf("bad int constant %q: %w", rest, err)
		}
		obj.AddConst(value.Int(n))
	case "float":
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return fmt.Errorf("bad float constant %q: %w", rest, err)
		}
		obj.AddConst(value.Float(f))
	case "str":
		unquoted, err := strconv.Unquote(rest)
		if err != nil {
			return fmt.Errorf("bad string constant %q: %w", rest, err)
		}
		obj.AddConst(value.NewStr(unquoted))
	case "bool":
		obj.AddConst(value.Bool(rest == "true"))
	case "none":
		obj.AddConst(value.None)
	default:
		return fmt.Errorf("unknown constant kind %q", kind)
	}
	return nil
}

func assembleInstruction(obj *code.Object, text string, line uint16) error {
	fields := strings.Fields(text)
	mnemonic := fields[0]
	op, ok := opcode.Lookup(mnemonic)
	if !ok {
		return fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	arg := int32(-1)
	if len(fields) > 1 {
		n, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad argument %q for %s: %w", fields[1], mnemonic, err)
		}
		arg = int32(n)
	}
	obj.Emit(op, arg, line)
	return nil
}
