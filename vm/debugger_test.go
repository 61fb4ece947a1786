package vm

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOperandSigils(t *testing.T) {
	cases := []struct {
		text string
		ty   OperandType
		val  uint16
	}{
		{"#42", OperandImm, 42},
		{"$7", OperandReg, 7},
		{"*3", OperandDeref, 3},
		{"#0x2A", OperandImm, 42},
	}
	for _, c := range cases {
		o, err := ParseOperand(c.text)
		assert(t, err == nil, "%s: unexpected error: %v", c.text, err)
		assert(t, o.Type == c.ty && o.Value == c.val, "%s: got %+v", c.text, o)
	}
}

func TestParseOperandUnknownSigil(t *testing.T) {
	_, err := ParseOperand("@5")
	assert(t, err != nil, "expected an error for an unrecognized sigil")
}

func TestParseOperandSegmentPrefix(t *testing.T) {
	o, err := ParseOperand("*0:#1")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, o.Type == OperandImm && o.Value == 1, "data operand mismatch: %+v", o)
	assert(t, o.Segment != nil && o.Segment.Type == OperandDeref && o.Segment.Value == 0, "segment mismatch: %+v", o.Segment)
}

func TestDebuggerPrintOperandImm(t *testing.T) {
	var out bytes.Buffer
	m := New(WithStdin(strings.NewReader("p #7\nq\n")), WithStdout(&out))
	d := NewDebugger(m)

	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "expected ErrDebuggerQuit, got %v", err)
	assert(t, strings.Contains(out.String(), "#7 = 7"), "expected an imm evaluation line, got %q", out.String())
}

func TestDebuggerPrintOperandReg(t *testing.T) {
	var out bytes.Buffer
	m := New(WithStdin(strings.NewReader("p $3\nq\n")), WithStdout(&out))
	m.Registers[3] = 123
	d := NewDebugger(m)

	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "expected ErrDebuggerQuit, got %v", err)
	assert(t, strings.Contains(out.String(), "$3 = 123"), "expected a reg evaluation line, got %q", out.String())
}

func TestDebuggerImplicitRepeatOnBlankLine(t *testing.T) {
	var out bytes.Buffer
	m := New(WithStdin(strings.NewReader("si\n\nq\n")), WithStdout(&out))
	loadWords(m, []uint16{
		uint16(Noop),
		uint16(Noop),
		uint16(Die),
	})
	d := NewDebugger(m)

	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "expected ErrDebuggerQuit, got %v", err)
	// Two "si" (one explicit, one repeated on the blank line) plus the
	// disassembly line for each should appear, leaving IP at the die.
	assert(t, m.IP() == 2, "the blank line should have repeated 'si' a second time, IP=%d", m.IP())
}

func TestDebuggerQuitCommand(t *testing.T) {
	m := New(WithStdin(strings.NewReader("q\n")))
	d := NewDebugger(m)
	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "expected ErrDebuggerQuit, got %v", err)
}

func TestDebuggerUnknownCommandIsIgnored(t *testing.T) {
	m := New(WithStdin(strings.NewReader("bogus\nq\n")))
	d := NewDebugger(m)
	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "unknown commands should be ignored, not abort the session: %v", err)
}

func TestDebuggerBreakpointToggle(t *testing.T) {
	m := New()
	d := NewDebugger(m)
	d.toggleBreakpoint("5")
	_, on := d.breakpoints[5]
	assert(t, on, "expected breakpoint at 5 to be set")

	d.toggleBreakpoint("5")
	_, on = d.breakpoints[5]
	assert(t, !on, "expected breakpoint at 5 to be cleared on second toggle")
}

func TestDebuggerProgramCommandStopsAtLoadedEnd(t *testing.T) {
	var out bytes.Buffer
	m := New(WithStdin(strings.NewReader("program\nq\n")), WithStdout(&out))
	// loadWords doesn't go through Load, so it doesn't set the loaded
	// bound on its own; set it explicitly to simulate a 3-word image
	// sitting in an otherwise zero-initialized 65536-word memory.
	loadWords(m, []uint16{uint16(Noop), uint16(Noop), uint16(Die)})
	m.setLoaded(3)

	startIP := m.IP()
	d := NewDebugger(m)
	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "expected ErrDebuggerQuit, got %v", err)
	assert(t, m.IP() == startIP, "program should restore IP afterward, got %d", m.IP())

	lines := strings.Count(out.String(), ":")
	assert(t, lines == 3, "expected 3 disassembled lines from \"program\", got %d in %q", lines, out.String())
}

func TestDebuggerRunUntilBreakpoint(t *testing.T) {
	m := New(WithStdin(strings.NewReader("b 2\nr\nq\n")))
	loadWords(m, []uint16{
		uint16(Noop),
		uint16(Noop),
		uint16(Noop),
		uint16(Die),
	})
	d := NewDebugger(m)

	err := d.Run()
	assert(t, err == ErrDebuggerQuit, "expected ErrDebuggerQuit, got %v", err)
	assert(t, m.IP() == 2, "runUntilBreak should stop with IP at the breakpoint, got %d", m.IP())
}
