// Command shkdump decodes a shk program image and prints one disassembled
// instruction per line, without executing anything. It shares the same
// decoder and mnemonic renderer the debugger's "si" command uses; it does
// not re-implement decoding and is not a general assembler/disassembler.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shk-emu/shkvm/vm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: shkdump file [file...]")
		os.Exit(1)
	}

	files := make([]*os.File, 0, len(os.Args)-1)
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	readers := make([]io.Reader, 0, len(os.Args)-1)
	for _, p := range os.Args[1:] {
		f, err := os.Open(p)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		files = append(files, f)
		readers = append(readers, f)
	}

	m := vm.New()
	if err := vm.Load(m, readers...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := dumpProgram(m, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// dumpProgram decodes m's loaded image from address 0, printing one
// disassembled line per instruction to out. It stops at the first decode
// error or once it reaches the end of the loaded image (m.Loaded()),
// whichever comes first - the trailing, zero-initialized remainder of
// Memory decodes as an endless run of valid zero-arity noops, so a loop
// bounded only by decode errors would never terminate.
func dumpProgram(m *vm.Machine, out io.Writer) error {
	m.SetIP(0)
	for m.IP() < m.Loaded() {
		instr, err := vm.DecodeInstruction(m)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, vm.Disassemble(instr))
	}
	return nil
}
