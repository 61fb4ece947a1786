package vm

import "fmt"

// maxSegmentDepth bounds segment-prefix recursion: a segment operand is
// never itself segmented in well-formed input.
const maxSegmentDepth = 1

// DecodeOperand reads one word at the current IP, post-increments IP, and
// returns the operand it encodes. If bit 15 is set, the word just read is a
// segment prefix: the true data operand is the next word, decoded
// recursively, with the prefix attached under Segment.
func DecodeOperand(m *Machine) (Operand, error) {
	return decodeOperandDepth(m, 0)
}

func decodeOperandDepth(m *Machine, depth int) (Operand, error) {
	w := m.fetchWord()

	oper := Operand{
		Type:  OperandType((w >> 12) & 0b11),
		Value: w & 0x0FFF,
	}
	if oper.Type == 3 {
		return Operand{}, fmt.Errorf("%w: reserved operand type", ErrDecode)
	}

	if w>>15 == 0 {
		return oper, nil
	}

	if depth >= maxSegmentDepth {
		return Operand{}, fmt.Errorf("%w: segment nested deeper than one level", ErrDecode)
	}

	data, err := decodeOperandDepth(m, depth+1)
	if err != nil {
		return Operand{}, err
	}
	seg := oper
	data.Segment = &seg
	return data, nil
}

// DecodeInstruction reads one word at the current IP, post-increments IP,
// and returns the instruction it starts. If bit 15 is set, the word is a
// command prefix: its operands are read, the next instruction is decoded
// recursively, and the command is appended to that inner instruction's
// command list. The recursive construction naturally builds the list in
// reverse textual order (innermost, closest-to-opcode command first); since
// commands are pure, AND-combined predicates this is unobservable during
// execution, but disassembly should read back in source order, so the
// single top-level call reverses the list once before returning.
func DecodeInstruction(m *Machine) (Instruction, error) {
	instr, err := decodeInstructionInner(m)
	if err != nil {
		return Instruction{}, err
	}
	reverseCommands(instr.Commands)
	return instr, nil
}

func reverseCommands(cmds []Command) {
	for i, j := 0, len(cmds)-1; i < j; i, j = i+1, j-1 {
		cmds[i], cmds[j] = cmds[j], cmds[i]
	}
}

func decodeInstructionInner(m *Machine) (Instruction, error) {
	w := m.fetchWord()

	if w>>15 != 0 {
		cmdType := CommandType(w & 0xFF)
		arity, ok := cmdType.Arity()
		if !ok {
			return Instruction{}, fmt.Errorf("%w: unknown command type %d", ErrDecode, cmdType)
		}

		operands, err := decodeOperands(m, arity)
		if err != nil {
			return Instruction{}, err
		}

		instr, err := decodeInstructionInner(m)
		if err != nil {
			return Instruction{}, err
		}
		instr.Commands = append(instr.Commands, Command{Type: cmdType, Operands: operands})
		return instr, nil
	}

	op := Opcode(w)
	arity, ok := op.Arity()
	if !ok {
		return Instruction{}, fmt.Errorf("%w: unknown opcode %d", ErrDecode, uint16(op))
	}

	operands, err := decodeOperands(m, arity)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Operands: operands}, nil
}

func decodeOperands(m *Machine, n int) ([]Operand, error) {
	if n == 0 {
		return nil, nil
	}
	operands := make([]Operand, n)
	for i := 0; i < n; i++ {
		oper, err := DecodeOperand(m)
		if err != nil {
			return nil, err
		}
		operands[i] = oper
	}
	return operands, nil
}
