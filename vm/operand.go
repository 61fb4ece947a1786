package vm

// OperandType names how an Operand's Value field should be interpreted.
type OperandType uint8

const (
	// OperandImm is a literal 12-bit value.
	OperandImm OperandType = 0
	// OperandReg names a register directly by index (low 8 bits of Value).
	OperandReg OperandType = 1
	// OperandDeref names a register whose contents are themselves a
	// register index.
	OperandDeref OperandType = 2
)

// typeChar renders the operand's sigil for disassembly: '#' immediate,
// '$' register, '*' deref.
func (t OperandType) typeChar() byte {
	switch t {
	case OperandImm:
		return '#'
	case OperandReg:
		return '$'
	case OperandDeref:
		return '*'
	default:
		return '?'
	}
}

// Operand is a decoded operand word: a type, a 12-bit value, and an
// optional segment sub-operand. Segments never nest past one level -
// Segment, if present, is itself never segmented.
type Operand struct {
	Type    OperandType
	Value   uint16
	Segment *Operand
}

// EvalRef yields the register index an operand names. It is only defined
// for reg and deref operands; calling it on an imm operand is a program
// error per the machine's operand contract.
func (o Operand) EvalRef(m *Machine) (uint8, error) {
	switch o.Type {
	case OperandReg:
		return uint8(o.Value), nil
	case OperandDeref:
		return uint8(m.Registers[uint8(o.Value)]), nil
	default:
		return 0, ErrOperand
	}
}

// Eval yields the 16-bit value an operand denotes: the literal for imm,
// otherwise the contents of the register EvalRef names.
func (o Operand) Eval(m *Machine) (uint16, error) {
	if o.Type == OperandImm {
		return o.Value, nil
	}
	ref, err := o.EvalRef(m)
	if err != nil {
		return 0, err
	}
	return m.Registers[ref], nil
}
