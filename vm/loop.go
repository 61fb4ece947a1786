package vm

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
)

// Loop drives the decode/execute cycle against a Machine until the program
// terminates. Verbose tracing is carried as a single boolean rather than
// threaded through every call, since it is a cross-cutting concern.
type Loop struct {
	Machine *Machine
	Verbose bool

	dbg *Debugger
}

// NewLoop returns a Loop ready to run m, with its own attached Debugger for
// the debug opcode and any debugger commands that step through execution.
func NewLoop(m *Machine) *Loop {
	return &Loop{Machine: m, dbg: NewDebugger(m)}
}

// Run decodes and executes instructions until die, a debugger quit, or a
// fatal error. It returns nil for a clean stop (die or debugger quit) and
// the triggering error otherwise.
func (l *Loop) Run() error {
	gcPercent := currentGCPercent()
	debug.SetGCPercent(-1)
	defer debug.SetGCPercent(gcPercent)

	for {
		instr, err := DecodeInstruction(l.Machine)
		if err != nil {
			return err
		}
		if l.Verbose {
			fmt.Fprintf(os.Stdout, "decoded %s\n", Disassemble(instr))
		}

		signal, err := Exec(l.Machine, instr, l.dbg)
		if err != nil {
			return err
		}
		if l.Verbose {
			fmt.Fprintf(os.Stdout, "executed %s\n", instr.Op)
		}

		if signal == SignalTerminate {
			return nil
		}
	}
}

// currentGCPercent reads GOGC the way the teacher's run loop does, falling
// back to 100 when unset or unparsable.
func currentGCPercent() int {
	key, ok := os.LookupEnv("GOGC")
	if !ok {
		return 100
	}
	v, err := strconv.ParseInt(key, 10, 32)
	if err != nil {
		return 100
	}
	return int(v)
}
