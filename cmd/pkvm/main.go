// Command pkvm is the CLI front-end for the reference dispatcher: it
// assembles a small text bytecode format (internal/asm) and either runs
// or disassembles it. Grounded on cmd/sentra/main.go's hand-rolled
// os.Args dispatch with a command-alias table, rather than a flag
// framework — the teacher never wires cobra/pflag, so neither do we.
package main

import (
	"fmt"
	"os"
	"time"

	"pkvm/cmd/pkvm/commands"
)

const version = "0.1.0"

var (
	buildDate = time.Now().Format("2006-01-02")
)

var commandAliases = map[string]string{
	"r": "run",
	"d": "disasm",
	"v": "version",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}
	rest := args[1:]

	var err error
	switch cmd {
	case "run":
		err = commands.Run(rest)
	case "disasm":
		err = commands.Disasm(rest)
	case "version":
		fmt.Printf("pkvm %s (built %s)\n", version, buildDate)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pkvm: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pkvm <command> [args]

commands:
  run <file.pka>      assemble and execute a bytecode text file
  disasm <file.pka>   assemble and print its disassembly
  version             print the build version`)
}
