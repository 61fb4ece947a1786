package vm

import "fmt"

// Signal tells the run loop what to do after executing one instruction.
type Signal int

const (
	// SignalContinue means decode and execute the next instruction.
	SignalContinue Signal = iota
	// SignalTerminate means stop the run loop cleanly (die, or debugger quit).
	SignalTerminate
)

// Exec evaluates an instruction's conditional command prefixes and, if all
// pass, its base opcode. It never decodes - the caller is responsible for
// positioning IP past whatever DecodeInstruction already consumed.
func Exec(m *Machine, instr Instruction, dbg *Debugger) (Signal, error) {
	for _, cmd := range instr.Commands {
		ok, err := evalCommand(m, cmd)
		if err != nil {
			return SignalTerminate, err
		}
		if !ok {
			return SignalContinue, nil
		}
	}

	return execOpcode(m, instr, dbg)
}

func evalCommand(m *Machine, cmd Command) (bool, error) {
	x, err := cmd.Operands[0].Eval(m)
	if err != nil {
		return false, err
	}
	signed := int16(x)

	switch cmd.Type {
	case CmdEQ:
		return x == 0, nil
	case CmdNE:
		return x != 0, nil
	case CmdLT:
		return signed < 0, nil
	case CmdLE:
		return signed <= 0, nil
	case CmdGT:
		return signed > 0, nil
	case CmdGE:
		return signed >= 0, nil
	default:
		return false, fmt.Errorf("%w: unimplemented command type %s", ErrDecode, cmd.Type)
	}
}

func execOpcode(m *Machine, instr Instruction, dbg *Debugger) (Signal, error) {
	switch instr.Op {
	case Noop:
		return SignalContinue, nil

	case Debug:
		if dbg == nil {
			return SignalContinue, nil
		}
		if err := dbg.Run(); err != nil {
			if err == ErrDebuggerQuit {
				return SignalTerminate, nil
			}
			return SignalTerminate, err
		}
		return SignalContinue, nil

	case Halt:
		out := m.Stdout()
		fmt.Fprintln(out, "Hit enter to continue")
		out.Flush()
		if _, err := m.ReadLine(); err != nil {
			return SignalTerminate, err
		}
		return SignalContinue, nil

	case Die:
		return SignalTerminate, nil

	case LoadOp:
		return SignalContinue, execLoad(m, instr)

	case Store:
		return SignalContinue, execStore(m, instr)

	case Pop:
		ref, err := instr.Operands[0].EvalRef(m)
		if err != nil {
			return SignalTerminate, err
		}
		sp := m.SP()
		m.Registers[ref] = m.Memory[sp]
		m.SetSP(sp + 1)
		return SignalContinue, nil

	case Push:
		v, err := instr.Operands[0].Eval(m)
		if err != nil {
			return SignalTerminate, err
		}
		sp := m.SP() - 1
		m.SetSP(sp)
		m.Memory[sp] = v
		return SignalContinue, nil

	case Move:
		return SignalContinue, assign(m, instr.Operands[0], func() (uint16, error) {
			return instr.Operands[1].Eval(m)
		})

	case Add:
		return SignalContinue, arith3(m, instr, func(b, c uint16) uint16 { return b + c })

	case Compare:
		return SignalContinue, arith3(m, instr, func(b, c uint16) uint16 { return b - c })

	case Multiply:
		return SignalContinue, arith3(m, instr, func(b, c uint16) uint16 { return b * c })

	case Divide:
		return SignalContinue, arith3Checked(m, instr, func(b, c uint16) (uint16, error) {
			if c == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrArithmetic)
			}
			return b / c, nil
		})

	case Modulo:
		return SignalContinue, arith3Checked(m, instr, func(b, c uint16) (uint16, error) {
			if c == 0 {
				return 0, fmt.Errorf("%w: modulo by zero", ErrArithmetic)
			}
			return b % c, nil
		})

	case Branch:
		v, err := instr.Operands[0].Eval(m)
		if err != nil {
			return SignalTerminate, err
		}
		m.SetIP(v)
		return SignalContinue, nil

	case Call:
		v, err := instr.Operands[0].Eval(m)
		if err != nil {
			return SignalTerminate, err
		}
		sp := m.SP() - 1
		m.SetSP(sp)
		m.Memory[sp] = m.IP()
		m.SetIP(v)
		return SignalContinue, nil

	case Ret:
		sp := m.SP()
		m.SetIP(m.Memory[sp])
		m.SetSP(sp + 1)
		return SignalContinue, nil

	case GetIP:
		ref, err := instr.Operands[0].EvalRef(m)
		if err != nil {
			return SignalTerminate, err
		}
		m.Registers[ref] = uint16(m.IPAlias())
		return SignalContinue, nil

	case SetIP:
		ref, err := instr.Operands[0].EvalRef(m)
		if err != nil {
			return SignalTerminate, err
		}
		m.SetIPAlias(ref)
		return SignalContinue, nil

	case GetSP:
		ref, err := instr.Operands[0].EvalRef(m)
		if err != nil {
			return SignalTerminate, err
		}
		m.Registers[ref] = uint16(m.SPAlias())
		return SignalContinue, nil

	case SetSP:
		ref, err := instr.Operands[0].EvalRef(m)
		if err != nil {
			return SignalTerminate, err
		}
		m.SetSPAlias(ref)
		return SignalContinue, nil

	default:
		return SignalTerminate, fmt.Errorf("%w: unimplemented opcode %s", ErrDecode, instr.Op)
	}
}

func assign(m *Machine, dst Operand, value func() (uint16, error)) error {
	ref, err := dst.EvalRef(m)
	if err != nil {
		return err
	}
	v, err := value()
	if err != nil {
		return err
	}
	m.Registers[ref] = v
	return nil
}

func arith3(m *Machine, instr Instruction, op func(b, c uint16) uint16) error {
	return arith3Checked(m, instr, func(b, c uint16) (uint16, error) {
		return op(b, c), nil
	})
}

func arith3Checked(m *Machine, instr Instruction, op func(b, c uint16) (uint16, error)) error {
	ref, err := instr.Operands[0].EvalRef(m)
	if err != nil {
		return err
	}
	b, err := instr.Operands[1].Eval(m)
	if err != nil {
		return err
	}
	c, err := instr.Operands[2].Eval(m)
	if err != nil {
		return err
	}
	v, err := op(b, c)
	if err != nil {
		return err
	}
	m.Registers[ref] = v
	return nil
}

// segmentOf evaluates an operand's segment sub-operand, defaulting to 0
// (memory) when no segment prefix is present.
func segmentOf(m *Machine, o Operand) (uint16, error) {
	if o.Segment == nil {
		return 0, nil
	}
	return o.Segment.Eval(m)
}

func execLoad(m *Machine, instr Instruction) error {
	dst, src := instr.Operands[0], instr.Operands[1]

	seg, err := segmentOf(m, src)
	if err != nil {
		return err
	}

	ref, err := dst.EvalRef(m)
	if err != nil {
		return err
	}

	switch seg {
	case 0:
		addr, err := src.Eval(m)
		if err != nil {
			return err
		}
		m.Registers[ref] = m.Memory[addr]
	case 1:
		b, err := m.ReadByte()
		if err != nil {
			return err
		}
		m.Registers[ref] = b
	default:
		return fmt.Errorf("%w: unknown segment %d", ErrSegment, seg)
	}
	return nil
}

func execStore(m *Machine, instr Instruction) error {
	dst, src := instr.Operands[0], instr.Operands[1]

	seg, err := segmentOf(m, dst)
	if err != nil {
		return err
	}

	switch seg {
	case 0:
		addr, err := dst.Eval(m)
		if err != nil {
			return err
		}
		v, err := src.Eval(m)
		if err != nil {
			return err
		}
		m.Memory[addr] = v
	case 1:
		v, err := src.Eval(m)
		if err != nil {
			return err
		}
		return m.WriteByte(byte(v))
	default:
		return fmt.Errorf("%w: unknown segment %d", ErrSegment, seg)
	}
	return nil
}
