// Package opcode is a concrete instance of the "opcode enumeration"
// collaborator contract from spec.md §6: a list of mnemonics, assigned a
// dense u8 in source order, with a parallel name table for diagnostics.
// It is consumed by internal/code (disassembly) and internal/refdispatch
// (execution); spec.md assigns it no semantics of its own.
//
// Grounded on internal/bytecode/opcodes.go's iota block, trimmed to the
// set a minimal stack dispatcher needs: constants, name/global access,
// arithmetic, comparisons, stack shuffling, jumps, calls, and list
// construction.
package opcode

// Code is a dense opcode value, assigned in source order starting at 0.
type Code uint8

const (
	LoadConst Code = iota
	LoadName
	StoreName
	LoadGlobal
	StoreGlobal
	Pop
	Dup
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	CompareEq
	CompareNe
	CompareLt
	CompareLe
	CompareGt
	CompareGe
	UnaryNegate
	UnaryNot
	JumpAbsolute
	PopJumpIfFalse
	PopJumpIfTrue
	Call
	ReturnValue
	BuildList

	numOpcodes
)

var names = [numOpcodes]string{
	LoadConst:      "LOAD_CONST",
	LoadName:       "LOAD_NAME",
	StoreName:      "STORE_NAME",
	LoadGlobal:     "LOAD_GLOBAL",
	StoreGlobal:    "STORE_GLOBAL",
	Pop:            "POP",
	Dup:            "DUP",
	BinaryAdd:      "BINARY_ADD",
	BinarySub:      "BINARY_SUB",
	BinaryMul:      "BINARY_MUL",
	BinaryDiv:      "BINARY_DIV",
	BinaryMod:      "BINARY_MOD",
	CompareEq:      "COMPARE_EQ",
	CompareNe:      "COMPARE_NE",
	CompareLt:      "COMPARE_LT",
	CompareLe:      "COMPARE_LE",
	CompareGt:      "COMPARE_GT",
	CompareGe:      "COMPARE_GE",
	UnaryNegate:    "UNARY_NEGATE",
	UnaryNot:       "UNARY_NOT",
	JumpAbsolute:   "JUMP_ABSOLUTE",
	PopJumpIfFalse: "POP_JUMP_IF_FALSE",
	PopJumpIfTrue:  "POP_JUMP_IF_TRUE",
	Call:           "CALL",
	ReturnValue:    "RETURN_VALUE",
	BuildList:      "BUILD_LIST",
}

// Name returns the mnemonic for op, or "UNKNOWN" if out of range.
func Name(op Code) string {
	if int(op) < 0 || int(op) >= int(numOpcodes) {
		return "UNKNOWN"
	}
	return names[op]
}

// Lookup returns the Code for a mnemonic, used by internal/asm.
func Lookup(name string) (Code, bool) {
	for i, n := range names {
		if n == name {
			return Code(i), true
		}
	}
	return 0, false
}
