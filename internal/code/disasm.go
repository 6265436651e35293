package code

import (
	"fmt"
	"strconv"
	"strings"

	"pkvm/internal/opcode"
)

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// Disassemble produces a human-readable rendering: one line per
// instruction of the form "<line> <ip> <op-name> <arg?>", blank when the
// line is unchanged from the previous instruction, with a blank
// separator line inserted at each source-line change; followed by
// summary lines for consts and names; followed by nested disassembly for
// each constant that is itself a function.
//
// This is informational, not a stable interface (spec.md §4.C), but the
// structure follows original_source's codeobject.h::toString() exactly:
// same blank-line-on-line-change behavior and the same recursive walk
// over function-valued constants.
func (o *Object) Disassemble() string {
	var sb strings.Builder
	prevLine := -1
	for i, ins := range o.Code {
		line := strconv.Itoa(int(ins.Line))
		if int(ins.Line) == prevLine {
			line = ""
		} else {
			if prevLine != -1 {
				sb.WriteByte('\n')
			}
			prevLine = int(ins.Line)
		}
		sb.WriteString(pad(line, 12))
		sb.WriteByte(' ')
		sb.WriteString(pad(strconv.Itoa(i), 3))
		sb.WriteByte(' ')
		sb.WriteString(pad(opcode.Name(ins.Op), 20))
		sb.WriteByte(' ')
		if ins.Arg != -1 {
			sb.WriteString(strconv.Itoa(int(ins.Arg)))
		}
		if i != len(o.Code)-1 {
			sb.WriteByte('\n')
		}
	}

	var consts strings.Builder
	consts.WriteString("co_consts: ")
	for i, c := range o.Consts {
		consts.WriteString(c.GetTypeName())
		if i != len(o.Consts)-1 {
			consts.WriteString(", ")
		}
	}

	var names strings.Builder
	names.WriteString("co_names: ")
	for i, n := range o.Names {
		names.WriteString(n)
		if i != len(o.Names)-1 {
			names.WriteString(", ")
		}
	}

	sb.WriteByte('\n')
	sb.WriteString(consts.String())
	sb.WriteByte('\n')
	sb.WriteString(names.String())
	sb.WriteByte('\n')

	for _, c := range o.Consts {
		if fn, ok := c.AsFunction(); ok {
			sb.WriteByte('\n')
			sb.WriteString(fmt.Sprintf("%s:\n", fn.Name))
			sb.WriteString(fn.Disassemble())
		}
	}
	return sb.String()
}
