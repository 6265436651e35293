// Package refdispatch is a minimal reference dispatcher: a concrete
// instance of the "dispatcher" spec.md §1 names as an external
// collaborator of the core. It exists to exercise and integration-test
// internal/frame and internal/code end to end, and to give cmd/pkvm
// something runnable; it is not a complete language runtime (no
// closures, no exceptions, no classes — those stay out of scope per
// spec.md's Non-goals).
//
// Grounded on the switch-on-opcode shape of internal/vm/vm.go's dispatch
// loop, reduced to the internal/opcode table.
package refdispatch

import (
	"fmt"

	"pkvm/internal/code"
	"pkvm/internal/frame"
	"pkvm/internal/opcode"
	"pkvm/internal/value"
)

// Modules is a registry of native builtin module tables (e.g. "db",
// "net") that CALL can invoke through a LOAD_GLOBAL of
// "<module>.<function>".
type Modules struct {
	tables map[string]map[string]value.NativeFunc
}

// NewModules constructs an empty module registry.
func NewModules() *Modules { return &Modules{tables: make(map[string]map[string]value.NativeFunc)} }

// Register installs fn under module.name, making it callable from
// assembled bytecode as a global named "module.name".
func (m *Modules) Register(module string, fn value.NativeFunc) {
	if m.tables[module] == nil {
		m.tables[module] = make(map[string]value.NativeFunc)
	}
	m.tables[module][fn.Name] = fn
}

// InstallInto copies every registered native function into globals under
// its "module.name" key, so LOAD_GLOBAL can find it.
func (m *Modules) InstallInto(globals *frame.Globals) {
	for module, fns := range m.tables {
		for name, fn := range fns {
			globals.Set(module+"."+name, fn)
		}
	}
}

// Run executes co to completion on a fresh Frame and returns whatever is
// left on the operand stack (normally 0 or 1 values).
func Run(co *code.Object, globals *frame.Globals) ([]code.Value, error) {
	f := frame.New(co, nil, globals)
	if err := step(f); err != nil {
		return nil, err
	}
	depth := f.ValueCount()
	if depth == 0 {
		return nil, nil
	}
	return f.PopNReversed(depth), nil
}

func step(f *frame.Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("refdispatch: %v", r)
			}
		}
	}()

	for !f.IsEnd() {
		ins := f.ReadCode()
		switch ins.Op {
		case opcode.LoadConst:
			f.PushValue(f.Code.Consts[ins.Arg])
		case opcode.LoadName:
			name := f.Code.Names[ins.Arg]
			v, ok := f.GetLocal(name)
			if !ok {
				return fmt.Errorf("refdispatch: undefined local %q", name)
			}
			f.PushValue(v)
		case opcode.StoreName:
			name := f.Code.Names[ins.Arg]
			f.SetLocal(name, f.PopValue())
		case opcode.LoadGlobal:
			name := f.Code.Names[ins.Arg]
			v, ok := f.Globals.Get(name)
			if !ok {
				return fmt.Errorf("refdispatch: undefined global %q", name)
			}
			f.PushValue(v)
		case opcode.StoreGlobal:
			name := f.Code.Names[ins.Arg]
			f.Globals.Set(name, f.PopValue())
		case opcode.Pop:
			f.PopValue()
		case opcode.Dup:
			f.PushValue(f.TopValue())
		case opcode.BinaryAdd, opcode.BinarySub, opcode.BinaryMul, opcode.BinaryDiv, opcode.BinaryMod:
			b, a := f.PopValue(), f.PopValue()
			result, err := binaryArith(ins.Op, a, b)
			if err != nil {
				return err
			}
			f.PushValue(result)
		case opcode.CompareEq, opcode.CompareNe, opcode.CompareLt, opcode.CompareLe, opcode.CompareGt, opcode.CompareGe:
			b, a := f.PopValue(), f.PopValue()
			result, err := compare(ins.Op, a, b)
			if err != nil {
				return err
			}
			f.PushValue(value.Bool(result))
		case opcode.UnaryNegate:
			a := f.PopValue()
			result, err := negate(a)
			if err != nil {
				return err
			}
			f.PushValue(result)
		case opcode.UnaryNot:
			a := f.PopValue()
			f.PushValue(value.Bool(!truthy(a)))
		case opcode.JumpAbsolute:
			f.JumpTo(int(ins.Arg))
		case opcode.PopJumpIfFalse:
			if !truthy(f.PopValue()) {
				f.JumpTo(int(ins.Arg))
			}
		case opcode.PopJumpIfTrue:
			if truthy(f.PopValue()) {
				f.JumpTo(int(ins.Arg))
			}
		case opcode.Call:
			n := int(ins.Arg)
			args := f.PopNReversed(n)
			callee := f.PopValue()
			result, err := call(callee, args)
			if err != nil {
				return err
			}
			f.PushValue(result)
		case opcode.BuildList:
			n := int(ins.Arg)
			items := f.PopNReversed(n)
			lst := make(value.List, n)
			copy(lst, items)
			f.PushValue(lst)
		case opcode.ReturnValue:
			return nil
		default:
			return fmt.Errorf("refdispatch: unhandled opcode %s", opcode.Name(ins.Op))
		}
	}
	return nil
}

func call(callee code.Value, args []code.Value) (code.Value, error) {
	nf, ok := callee.(value.NativeFunc)
	if !ok {
		return nil, fmt.Errorf("refdispatch: %s is not callable", callee.GetTypeName())
	}
	return nf.Fn(args)
}

func truthy(v code.Value) bool {
	switch t := v.(type) {
	case value.Bool:
		return bool(t)
	case value.Int:
		return t != 0
	case value.Float:
		return t != 0
	case value.Str:
		return t.S.Length() > 0
	default:
		return v.GetTypeName() != "NoneType"
	}
}
