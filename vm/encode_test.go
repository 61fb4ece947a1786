package vm

import "testing"

// Helpers for assembling raw instruction words by hand in tests, mirroring
// the wire format in reverse: tests build a memory image the way the paired
// assembler would, then exercise the decoder/executor against it.

func encodeOperand(ty OperandType, value uint16) uint16 {
	return (uint16(ty)&0b11)<<12 | (value & 0x0FFF)
}

func encodeSegmentPrefix(ty OperandType, value uint16) uint16 {
	return 0x8000 | encodeOperand(ty, value)
}

func encodeCommand(ty CommandType) uint16 {
	return 0x8000 | uint16(ty)
}

func loadWords(m *Machine, words []uint16) {
	for i, w := range words {
		m.Memory[i] = w
	}
	m.SetIP(0)
}

func runToCompletion(t *testing.T, m *Machine) error {
	t.Helper()
	const maxSteps = 10000
	for i := 0; i < maxSteps; i++ {
		instr, err := DecodeInstruction(m)
		if err != nil {
			return err
		}
		signal, err := Exec(m, instr, nil)
		if err != nil {
			return err
		}
		if signal == SignalTerminate {
			return nil
		}
	}
	t.Fatalf("runToCompletion: exceeded %d steps, test program never terminated", maxSteps)
	return nil
}
