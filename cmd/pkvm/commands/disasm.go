package commands

import "fmt"

// Disasm assembles args[0] and prints its disassembly.
func Disasm(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pkvm disasm <file.pka>")
	}
	obj, err := assembleFile(args[0])
	if err != nil {
		return err
	}
	fmt.Println(obj.Disassemble())
	return nil
}
