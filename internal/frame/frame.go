// Package frame implements one activation of a code.Object: the operand
// stack, instruction pointer, local bindings, and a non-owning globals
// reference that spec.md §4.D specifies as the dispatcher's control
// surface.
//
// The operand stack's growth policy is grounded on
// internal/vm/vm_stack_manager.go's StackManager: start small, double on
// demand, and refuse to grow past a configurable ceiling rather than
// growing unboundedly — spec.md §4.D only requires "capacity grows on
// demand; no hard upper bound specified, but implementations should
// impose a configurable safety ceiling."
package frame

import (
	"pkvm/internal/code"
	"pkvm/internal/pkerr"
)

const (
	initialStackSize = 256
	// DefaultMaxStackSize is the safety ceiling spec.md §4.D recommends;
	// callers needing a different budget construct with NewWithLimit.
	DefaultMaxStackSize = 1 << 16
)

// Globals is the shared, non-owning name->value mapping for a module; all
// frames of the same module reference the same Globals.
type Globals struct {
	vars map[string]code.Value
}

// NewGlobals constructs an empty globals table.
func NewGlobals() *Globals { return &Globals{vars: make(map[string]code.Value)} }

func (g *Globals) Get(name string) (code.Value, bool) { v, ok := g.vars[name]; return v, ok }
func (g *Globals) Set(name string, v code.Value)       { g.vars[name] = v }

// Frame is one activation of a code.Object. It does not own Code or
// Globals.
type Frame struct {
	stack    []code.Value
	ip       int
	locals   map[string]code.Value
	Globals  *Globals
	Code     *code.Object
	maxStack int
}

// New builds a frame from (code, initial locals, globals), per spec.md
// §4.D's construction contract, using DefaultMaxStackSize as the operand
// stack ceiling.
func New(co *code.Object, locals map[string]code.Value, globals *Globals) *Frame {
	return NewWithLimit(co, locals, globals, DefaultMaxStackSize)
}

// NewWithLimit is like New but lets the embedder pick the operand stack
// safety ceiling.
func NewWithLimit(co *code.Object, locals map[string]code.Value, globals *Globals, maxStack int) *Frame {
	if locals == nil {
		locals = make(map[string]code.Value)
	}
	return &Frame{
		stack:    make([]code.Value, 0, initialStackSize),
		locals:   locals,
		Globals:  globals,
		Code:     co,
		maxStack: maxStack,
	}
}

// IsEnd reports ip >= len(code).
func (f *Frame) IsEnd() bool { return f.ip >= len(f.Code.Code) }

// ReadCode returns the instruction at ip and advances ip by 1.
// Precondition: !IsEnd(); unchecked by design per spec.md §4.D, but Go's
// bounds-checked slice indexing still turns a violation into a visible
// panic rather than silent corruption.
func (f *Frame) ReadCode() code.Instruction {
	ins := f.Code.Code[f.ip]
	f.ip++
	return ins
}

// CurrentLine returns the source line at ip, or -1 if terminal.
func (f *Frame) CurrentLine() int {
	if f.IsEnd() {
		return -1
	}
	return int(f.Code.Code[f.ip].Line)
}

// JumpTo sets ip to i. i must be a valid instruction index.
func (f *Frame) JumpTo(i int) {
	if i < 0 || i > len(f.Code.Code) {
		pkerr.Bug("frame: jump target %d out of range [0,%d]", i, len(f.Code.Code))
	}
	f.ip = i
}

// PushValue pushes v onto the operand stack, growing it (up to maxStack)
// as needed.
func (f *Frame) PushValue(v code.Value) {
	if len(f.stack) >= f.maxStack {
		panic(pkerr.New(pkerr.Bounds, "frame: operand stack exceeded limit of %d", f.maxStack))
	}
	f.stack = append(f.stack, v)
}

// PopValue pops and returns the top of the operand stack.
// Precondition: stack non-empty.
func (f *Frame) PopValue() code.Value {
	if len(f.stack) == 0 {
		pkerr.Bug("frame: pop from empty operand stack")
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v
}

// TopValue returns the top of the operand stack without popping it.
// Precondition: stack non-empty.
func (f *Frame) TopValue() code.Value {
	if len(f.stack) == 0 {
		pkerr.Bug("frame: top of empty operand stack")
	}
	return f.stack[len(f.stack)-1]
}

// ValueCount returns the operand stack depth.
func (f *Frame) ValueCount() int { return len(f.stack) }

// PopNReversed pops n values and returns them in their original push
// (left-to-right) order, despite the LIFO pop order.
func (f *Frame) PopNReversed(n int) []code.Value {
	if n < 0 || n > len(f.stack) {
		pkerr.Bug("frame: popNReversed(%d) exceeds stack depth %d", n, len(f.stack))
	}
	out := make([]code.Value, n)
	copy(out, f.stack[len(f.stack)-n:])
	f.stack = f.stack[:len(f.stack)-n]
	return out
}

// GetLocal looks up a local binding by identifier.
func (f *Frame) GetLocal(name string) (code.Value, bool) { v, ok := f.locals[name]; return v, ok }

// SetLocal sets a local binding by identifier.
func (f *Frame) SetLocal(name string, v code.Value) { f.locals[name] = v }
