package vm

import "strings"

// renderOperand writes one operand's textual form: an optional
// "segType segValue:" segment prefix, then the sigil and value of the
// operand itself.
func renderOperand(b *strings.Builder, o Operand) {
	if o.Segment != nil {
		b.WriteByte(o.Segment.Type.typeChar())
		writeUint(b, o.Segment.Value)
		b.WriteByte(':')
	}
	b.WriteByte(o.Type.typeChar())
	writeUint(b, o.Value)
}

func writeUint(b *strings.Builder, v uint16) {
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var digits [5]byte
	n := len(digits)
	for v > 0 {
		n--
		digits[n] = byte('0' + v%10)
		v /= 10
	}
	b.Write(digits[n:])
}

// Disassemble renders an instruction as
// "mnemonic sigilN, sigilN, ..., !cmd sigilN, !cmd sigilN", matching the
// debugger's "si" output and the standalone listing tool.
func Disassemble(instr Instruction) string {
	var b strings.Builder
	b.WriteString(instr.Op.String())

	first := true
	for _, o := range instr.Operands {
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteString(", ")
		}
		renderOperand(&b, o)
	}

	for _, cmd := range instr.Commands {
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString("!")
		b.WriteString(cmd.Type.String())
		for _, o := range cmd.Operands {
			b.WriteByte(' ')
			renderOperand(&b, o)
		}
	}

	return b.String()
}
