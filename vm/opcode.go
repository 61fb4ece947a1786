package vm

/*
	Opcode word layout: bit 15 = 0, bits 14-0 = opcode ordinal.
	Command-prefix word layout: bit 15 = 1, bits 7-0 = command type ordinal.

	The arity table below must match the paired assembler/encoder exactly -
	it is what tells the instruction decoder how many operand words follow
	an opcode or command-prefix word.
*/

// Opcode is the closed set of base instructions this machine executes.
type Opcode uint16

const (
	Noop     Opcode = 0
	Debug    Opcode = 1
	Halt     Opcode = 2
	Die      Opcode = 3
	LoadOp   Opcode = 4
	Store    Opcode = 5
	Move     Opcode = 6
	Add      Opcode = 7
	Compare  Opcode = 8
	Multiply Opcode = 9
	Branch   Opcode = 10
	GetIP    Opcode = 11
	SetIP    Opcode = 12
	GetSP    Opcode = 13
	SetSP    Opcode = 14
	Call     Opcode = 15
	Ret      Opcode = 16
	Push     Opcode = 17
	Pop      Opcode = 18
	Divide   Opcode = 19
	Modulo   Opcode = 20
)

var opcodeNames = map[Opcode]string{
	Noop:     "noop",
	Debug:    "debug",
	Halt:     "halt",
	Die:      "die",
	LoadOp:   "load",
	Store:    "store",
	Move:     "move",
	Add:      "add",
	Compare:  "compare",
	Multiply: "multiply",
	Branch:   "branch",
	GetIP:    "get_ip",
	SetIP:    "set_ip",
	GetSP:    "get_sp",
	SetSP:    "set_sp",
	Call:     "call",
	Ret:      "ret",
	Push:     "push",
	Pop:      "pop",
	Divide:   "divide",
	Modulo:   "modulo",
}

var opcodeArity = map[Opcode]int{
	Noop:     0,
	Debug:    0,
	Halt:     0,
	Die:      0,
	LoadOp:   2,
	Store:    2,
	Move:     2,
	Add:      3,
	Compare:  3,
	Multiply: 3,
	Branch:   1,
	GetIP:    1,
	SetIP:    1,
	GetSP:    1,
	SetSP:    1,
	Call:     1,
	Ret:      0,
	Push:     1,
	Pop:      1,
	Divide:   3,
	Modulo:   3,
}

// String renders the opcode's mnemonic, or "?unknown?" for an ordinal
// outside the closed set.
func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return "?unknown?"
}

// Arity reports how many operand words follow this opcode, and whether the
// opcode is recognized at all.
func (o Opcode) Arity() (int, bool) {
	n, ok := opcodeArity[o]
	return n, ok
}

// CommandType is the closed set of conditional predicates a command prefix
// can carry.
type CommandType uint8

const (
	CmdEQ CommandType = 0
	CmdNE CommandType = 1
	CmdLT CommandType = 2
	CmdLE CommandType = 3
	CmdGT CommandType = 4
	CmdGE CommandType = 5
)

var commandNames = map[CommandType]string{
	CmdEQ: "eq",
	CmdNE: "ne",
	CmdLT: "lt",
	CmdLE: "le",
	CmdGT: "gt",
	CmdGE: "ge",
}

// String renders the command's mnemonic, or "?unknown?" for an ordinal
// outside the closed set.
func (c CommandType) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "?unknown?"
}

// commandArity is 1 for every defined predicate today - all current
// commands compare a single operand against zero - but is looked up rather
// than hardcoded so a future predicate with different arity only needs an
// entry here.
var commandArity = map[CommandType]int{
	CmdEQ: 1,
	CmdNE: 1,
	CmdLT: 1,
	CmdLE: 1,
	CmdGT: 1,
	CmdGE: 1,
}

// Arity reports how many operand words follow this command type, and
// whether the command type is recognized at all.
func (c CommandType) Arity() (int, bool) {
	n, ok := commandArity[c]
	return n, ok
}
