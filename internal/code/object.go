// Package code implements the compiled-unit representation of
// spec.md §3/§4.C: an instruction stream plus a constant pool and a name
// pool, built by a compiler (external to this package) and executed by a
// dispatcher (also external) through an internal/frame.Frame.
//
// Grounded on internal/bytecode/chunk.go's Chunk (append-only code +
// constants + per-instruction debug info) and on original_source's
// codeobject.h, which this spec was distilled from; the (op, arg, line)
// triple and the addConst/addName/getNameIndex builder names follow
// codeobject.h literally rather than Chunk's byte-oriented encoding,
// since spec.md §3 specifies a triple, not a byte stream.
package code

import (
	"pkvm/internal/opcode"
	"pkvm/internal/pkerr"
)

// Instruction is one bytecode instruction: (op, arg, line) per spec.md §3.
// arg == -1 means "no argument"; line == 0 means "unknown".
type Instruction struct {
	Op   opcode.Code
	Arg  int32
	Line uint16
}

// Object is a compiled unit: a function or module body.
//
// Once handed to a Frame, Code/Consts/Names must not be resized
// (spec.md §3 invariant 4); the builder methods below are meant to be
// used only during compilation, before the first Frame is constructed
// over this Object.
type Object struct {
	Code     []Instruction
	Filename string
	Name     string
	Consts   []Value
	Names    []string
}

// New creates an empty code object for filename/name.
func New(filename, name string) *Object {
	return &Object{Filename: filename, Name: name}
}

// AddConst appends v to the constant pool and returns its index, the
// immediate used by LOAD_CONST-style instructions.
func (o *Object) AddConst(v Value) int {
	o.Consts = append(o.Consts, v)
	return len(o.Consts) - 1
}

// AddName returns the index of name in the name pool, appending it if
// this is the first time it has been seen (spec.md §3 invariant 3: no
// duplicates).
func (o *Object) AddName(name string) int {
	if i := o.GetNameIndex(name); i != -1 {
		return i
	}
	o.Names = append(o.Names, name)
	return len(o.Names) - 1
}

// GetNameIndex looks up name without inserting it, returning -1 if absent.
func (o *Object) GetNameIndex(name string) int {
	for i, n := range o.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Emit appends an instruction directly, for compilers building arbitrary
// (op, arg, line) triples.
func (o *Object) Emit(op opcode.Code, arg int32, line uint16) int {
	o.Code = append(o.Code, Instruction{Op: op, Arg: arg, Line: line})
	return len(o.Code) - 1
}

// Validate checks the invariants of spec.md §3: every branch target and
// const/name-load immediate is in range, per the dispatcher's jump table.
// isBranch/usesConst/usesName classify an opcode's arg; the dispatcher is
// external so this takes them as parameters rather than hard-coding a
// specific opcode table's semantics. The caller supplies the classifiers;
// internal/refdispatch does not call Validate.
func (o *Object) Validate(isBranch, usesConst, usesName func(opcode.Code) bool) error {
	for i, ins := range o.Code {
		switch {
		case isBranch(ins.Op):
			if ins.Arg < 0 || int(ins.Arg) >= len(o.Code) {
				return pkerr.New(pkerr.Bounds, "instruction %d: branch target %d out of range [0,%d)", i, ins.Arg, len(o.Code))
			}
		case usesConst(ins.Op):
			if ins.Arg < 0 || int(ins.Arg) >= len(o.Consts) {
				return pkerr.New(pkerr.Bounds, "instruction %d: const index %d out of range [0,%d)", i, ins.Arg, len(o.Consts))
			}
		case usesName(ins.Op):
			if ins.Arg < 0 || int(ins.Arg) >= len(o.Names) {
				return pkerr.New(pkerr.Bounds, "instruction %d: name index %d out of range [0,%d)", i, ins.Arg, len(o.Names))
			}
		}
	}
	return nil
}
