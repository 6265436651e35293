// Package commands holds cmd/pkvm's subcommand implementations, split
// one-file-per-command the way cmd/sentra/commands/build.go does.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"pkvm/internal/asm"
	"pkvm/internal/code"
	"pkvm/internal/dbmodule"
	"pkvm/internal/frame"
	"pkvm/internal/netmodule"
	"pkvm/internal/refdispatch"
	"pkvm/internal/value"
)

func assembleFile(path string) (*code.Object, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)
	obj, err := asm.Assemble(path, name, string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble %s: %w", path, err)
	}
	return obj, nil
}

// Run assembles args[0] and executes it, printing whatever remains on the
// operand stack. The "db" and "net" native modules are registered into
// globals so scripts can exercise the domain-stack drivers.
func Run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pkvm run <file.pka>")
	}
	obj, err := assembleFile(args[0])
	if err != nil {
		return err
	}

	globals := frame.NewGlobals()
	modules := refdispatch.NewModules()
	dbMgr := dbmodule.NewManager()
	for _, fn := range dbmodule.NativeFuncs(dbMgr) {
		modules.Register("db", fn)
	}
	netHub := netmodule.NewHub()
	for _, fn := range netmodule.NativeFuncs(netHub) {
		modules.Register("net", fn)
	}
	modules.InstallInto(globals)

	results, err := refdispatch.Run(obj, globals)
	if err != nil {
		return err
	}
	for _, v := range results {
		fmt.Println(value.Repr(v))
	}
	return nil
}
