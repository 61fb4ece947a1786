package vm

import "errors"

// Sentinel errors identifying the fatal error taxonomy from the machine's
// error handling design: decode/execute failures all terminate the current
// run, and the CLI front-end maps them to process exit codes.
var (
	// ErrDecode covers unknown opcode and command-type ordinals, reserved
	// operand-type bits, and segment prefixes nested deeper than one level.
	// A truncated stream is not reported: memory is a flat 65536-word array
	// and IP wraps around it, so decoding never runs out of words.
	ErrDecode = errors.New("decode error")

	// ErrOperand is returned by EvalRef against an immediate operand.
	ErrOperand = errors.New("operand error: cannot reference an immediate")

	// ErrArithmetic covers division and modulo by zero.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrSegment covers an unknown segment selector in load/store.
	ErrSegment = errors.New("segment error")

	// ErrLoad covers odd byte counts and I/O failures while loading.
	ErrLoad = errors.New("load error")

	// ErrDebuggerQuit is returned when the debugger's "q" command is used to
	// terminate the run loop. It is the only error that maps to a clean exit.
	ErrDebuggerQuit = errors.New("debugger quit")

	// ErrHalted names a clean stop by die; it is not a fatal error. Loop.Run
	// reports a clean stop as a nil error and does not return ErrHalted.
	ErrHalted = errors.New("program finished")
)
