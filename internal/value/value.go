// Package value supplies one concrete instance of the "tagged value
// handle" collaborator contract spec.md §6 calls PyVar: the core
// (internal/code, internal/frame) only depends on the code.Value
// interface, not on this package. This package exists so the module is
// actually runnable end to end (internal/refdispatch, internal/dbmodule,
// internal/netmodule all traffic in these concrete kinds).
package value

import (
	"fmt"
	"strings"

	"pkvm/internal/code"
	"pkvm/internal/pystr"
)

// Int is a 64-bit integer value.
type Int int64

func (Int) GetTypeName() string                { return "int" }
func (Int) AsFunction() (*code.Object, bool)   { return nil, false }

// Float is a 64-bit floating point value.
type Float float64

func (Float) GetTypeName() string              { return "float" }
func (Float) AsFunction() (*code.Object, bool) { return nil, false }

// Bool is a boolean value.
type Bool bool

func (Bool) GetTypeName() string              { return "bool" }
func (Bool) AsFunction() (*code.Object, bool) { return nil, false }

// noneType is the singleton "no value" value.
type noneType struct{}

func (noneType) GetTypeName() string              { return "NoneType" }
func (noneType) AsFunction() (*code.Object, bool) { return nil, false }

// None is the single instance of noneType.
var None code.Value = noneType{}

// Str wraps a pooled byte string as a value handle.
type Str struct{ S *pystr.Str }

func (Str) GetTypeName() string              { return "str" }
func (Str) AsFunction() (*code.Object, bool) { return nil, false }

// NewStr is a convenience constructor from a Go string.
func NewStr(s string) Str { return Str{S: pystr.New(s)} }

// NativeFunc is a host-supplied Go function exposed to the dispatcher,
// the mechanism by which internal/dbmodule and internal/netmodule expose
// their operations as callables.
type NativeFunc struct {
	Name string
	Fn   func(args []code.Value) (code.Value, error)
}

func (NativeFunc) GetTypeName() string              { return "native_function" }
func (NativeFunc) AsFunction() (*code.Object, bool) { return nil, false }

// Function wraps a code object: how nested functions, closures, and
// methods appear as entries in an enclosing code.Object's Consts, per
// spec.md §3.
type Function struct {
	Proto *code.Object
}

func (Function) GetTypeName() string { return "function" }
func (f Function) AsFunction() (*code.Object, bool) {
	return f.Proto, true
}

// List is an ordered sequence of values, built by BUILD_LIST and returned
// by native functions (e.g. dbmodule's "query") that produce more than one
// result.
type List []code.Value

func (List) GetTypeName() string              { return "list" }
func (List) AsFunction() (*code.Object, bool) { return nil, false }

// Repr renders v for diagnostics (the results `pkvm run` prints),
// matching the teacher's PrintValue switch-on-concrete-type pattern in
// internal/vm/value.go.
func Repr(v code.Value) string {
	switch t := v.(type) {
	case Int:
		return fmt.Sprintf("%d", int64(t))
	case Float:
		return fmt.Sprintf("%g", float64(t))
	case Bool:
		return fmt.Sprintf("%t", bool(t))
	case Str:
		return t.S.Escape(false)
	case noneType:
		return "None"
	case NativeFunc:
		return fmt.Sprintf("<native %s>", t.Name)
	case Function:
		return fmt.Sprintf("<fn %s>", t.Proto.Name)
	case List:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
