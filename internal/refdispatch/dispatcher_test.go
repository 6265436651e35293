package refdispatch

import (
	"testing"

	"pkvm/internal/asm"
	"pkvm/internal/code"
	"pkvm/internal/frame"
	"pkvm/internal/value"
)

func run(t *testing.T, src string) []interface{} {
	t.Helper()
	obj, err := asm.Assemble("<test>", "<module>", src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	results, err := Run(obj, frame.NewGlobals())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	out := make([]interface{}, len(results))
	for i, v := range results {
		out[i] = value.Repr(v)
	}
	return out
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "addition",
			src: `
.const int 10
.const int 20
LOAD_CONST 0
LOAD_CONST 1
BINARY_ADD
`,
			want: "30",
		},
		{
			name: "subtraction",
			src: `
.const int 50
.const int 20
LOAD_CONST 0
LOAD_CONST 1
BINARY_SUB
`,
			want: "30",
		},
		{
			name: "multiplication",
			src: `
.const int 5
.const int 6
LOAD_CONST 0
LOAD_CONST 1
BINARY_MUL
`,
			want: "30",
		},
		{
			name: "division promotes to float",
			src: `
.const int 7
.const int 2
LOAD_CONST 0
LOAD_CONST 1
BINARY_DIV
`,
			want: "3.5",
		},
		{
			name: "string concat",
			src: `
.const str "foo"
.const str "bar"
LOAD_CONST 0
LOAD_CONST 1
BINARY_ADD
`,
			want: `"foobar"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.src)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("got %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestNamesAndGlobals(t *testing.T) {
	src := `
.const int 7
.name x
LOAD_CONST 0
STORE_NAME 0
LOAD_NAME 0
`
	got := run(t, src)
	if len(got) != 1 || got[0] != "7" {
		t.Fatalf("got %v, want [7]", got)
	}
}

func TestJump(t *testing.T) {
	src := `
.const bool false
.const int 1
.const int 2
LOAD_CONST 0
POP_JUMP_IF_FALSE 4
LOAD_CONST 1
JUMP_ABSOLUTE 5
LOAD_CONST 2
`
	got := run(t, src)
	if len(got) != 1 || got[0] != "2" {
		t.Fatalf("got %v, want [2]", got)
	}
}

func TestBuildList(t *testing.T) {
	src := `
.const int 1
.const int 2
.const int 3
LOAD_CONST 0
LOAD_CONST 1
LOAD_CONST 2
BUILD_LIST 3
`
	got := run(t, src)
	if len(got) != 1 || got[0] != "[1, 2, 3]" {
		t.Fatalf("got %v, want [[1, 2, 3]]", got)
	}
}

func TestBuildListPreservesOrderForZeroAndOneElement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty",
			src:  "\nBUILD_LIST 0\n",
			want: "[]",
		},
		{
			name: "single",
			src: `
.const int 9
LOAD_CONST 0
BUILD_LIST 1
`,
			want: "[9]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.src)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("got %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestCallNativeFunction(t *testing.T) {
	globals := frame.NewGlobals()
	globals.Set("double", value.NativeFunc{Name: "double", Fn: func(args []code.Value) (code.Value, error) {
		n := args[0].(value.Int)
		return n * 2, nil
	}})

	src := `
.name double
.const int 21
LOAD_GLOBAL 0
LOAD_CONST 0
CALL 1
`
	obj, err := asm.Assemble("<test>", "<module>", src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	results, err := Run(obj, globals)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 || value.Repr(results[0]) != "42" {
		t.Fatalf("got %v, want [42]", results)
	}
}
