package refdispatch

import (
	"fmt"

	"pkvm/internal/code"
	"pkvm/internal/opcode"
	"pkvm/internal/pystr"
	"pkvm/internal/value"
)

func asFloat(v code.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	}
	return 0, false
}

func binaryArith(op opcode.Code, a, b code.Value) (code.Value, error) {
	if op == opcode.BinaryAdd {
		if sa, ok := a.(value.Str); ok {
			sb, ok := b.(value.Str)
			if !ok {
				return nil, fmt.Errorf("refdispatch: cannot add str and %s", b.GetTypeName())
			}
			return value.Str{S: pystr.Concat(sa.S, sb.S)}, nil
		}
	}
	ai, aIsInt := a.(value.Int)
	bi, bIsInt := b.(value.Int)
	if aIsInt && bIsInt && op != opcode.BinaryDiv {
		switch op {
		case opcode.BinaryAdd:
			return ai + bi, nil
		case opcode.BinarySub:
			return ai - bi, nil
		case opcode.BinaryMul:
			return ai * bi, nil
		case opcode.BinaryMod:
			if bi == 0 {
				return nil, fmt.Errorf("refdispatch: modulo by zero")
			}
			return ai % bi, nil
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("refdispatch: unsupported operand types %s and %s", a.GetTypeName(), b.GetTypeName())
	}
	switch op {
	case opcode.BinaryAdd:
		return value.Float(af + bf), nil
	case opcode.BinarySub:
		return value.Float(af - bf), nil
	case opcode.BinaryMul:
		return value.Float(af * bf), nil
	case opcode.BinaryDiv:
		if bf == 0 {
			return nil, fmt.Errorf("refdispatch: division by zero")
		}
		return value.Float(af / bf), nil
	case opcode.BinaryMod:
		if bf == 0 {
			return nil, fmt.Errorf("refdispatch: modulo by zero")
		}
		return value.Float(float64(int64(af) % int64(bf))), nil
	}
	return nil, fmt.Errorf("refdispatch: unreachable binary op %s", opcode.Name(op))
}

func compare(op opcode.Code, a, b code.Value) (bool, error) {
	if sa, ok := a.(value.Str); ok {
		sb, ok := b.(value.Str)
		if !ok {
			return false, fmt.Errorf("refdispatch: cannot compare str and %s", b.GetTypeName())
		}
		c := sa.S.Compare(sb.S)
		switch op {
		case opcode.CompareEq:
			return c == 0, nil
		case opcode.CompareNe:
			return c != 0, nil
		case opcode.CompareLt:
			return c < 0, nil
		case opcode.CompareLe:
			return c <= 0, nil
		case opcode.CompareGt:
			return c > 0, nil
		case opcode.CompareGe:
			return c >= 0, nil
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		if op == opcode.CompareEq {
			return false, nil
		}
		if op == opcode.CompareNe {
			return true, nil
		}
		return false, fmt.Errorf("refdispatch: unsupported comparison between %s and %s", a.GetTypeName(), b.GetTypeName())
	}
	switch op {
	case opcode.CompareEq:
		return af == bf, nil
	case opcode.CompareNe:
		return af != bf, nil
	case opcode.CompareLt:
		return af < bf, nil
	case opcode.CompareLe:
		return af <= bf, nil
	case opcode.CompareGt:
		return af > bf, nil
	case opcode.CompareGe:
		return af >= bf, nil
	}
	return false, fmt.Errorf("refdispatch: unreachable compare op %s", opcode.Name(op))
}

func negate(a code.Value) (code.Value, error) {
	switch t := a.(type) {
	case value.Int:
		return -t, nil
	case value.Float:
		return -t, nil
	}
	return nil, fmt.Errorf("refdispatch: cannot negate %s", a.GetTypeName())
}
