package code

import (
	"strings"
	"testing"

	"pkvm/internal/opcode"
)

func TestDisassembleBlankLineOnLineChange(t *testing.T) {
	o := New("<test>", "<module>")
	o.AddConst(fakeInt(10))
	o.AddConst(fakeInt(20))
	o.AddName("x")
	o.Emit(opcode.LoadConst, 0, 1)
	o.Emit(opcode.LoadConst, 1, 1)
	o.Emit(opcode.BinaryAdd, -1, 2)

	out := o.Disassemble()
	if !strings.Contains(out, "LOAD_CONST") {
		t.Fatalf("expected disassembly to mention LOAD_CONST, got:\n%s", out)
	}
	if !strings.Contains(out, "co_consts: int, int") {
		t.Fatalf("expected consts summary line, got:\n%s", out)
	}
	if !strings.Contains(out, "co_names: x") {
		t.Fatalf("expected names summary line, got:\n%s", out)
	}
	// a blank separator line appears before the line-2 instruction
	lines := strings.Split(out, "\n")
	foundBlankBeforeLine2 := false
	for i, l := range lines {
		if strings.Contains(l, "BINARY_ADD") && i > 0 && strings.TrimSpace(lines[i-1]) == "" {
			foundBlankBeforeLine2 = true
		}
	}
	if !foundBlankBeforeLine2 {
		t.Fatalf("expected a blank line before the line-2 instruction, got:\n%s", out)
	}
}

func TestDisassembleRecursesIntoFunctionConstants(t *testing.T) {
	inner := New("<test>", "inner")
	inner.Emit(opcode.ReturnValue, -1, 1)

	outer := New("<test>", "<module>")
	outer.AddConst(fakeFunc{inner})
	outer.Emit(opcode.LoadConst, 0, 1)

	out := outer.Disassemble()
	if !strings.Contains(out, "inner:") {
		t.Fatalf("expected nested disassembly for function constant, got:\n%s", out)
	}
}

type fakeFunc struct{ proto *Object }

func (fakeFunc) GetTypeName() string           { return "function" }
func (f fakeFunc) AsFunction() (*Object, bool) { return f.proto, true }
