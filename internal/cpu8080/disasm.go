// disasm.go - a one-opcode-at-a-time static disassembler. Grounded in
// debug_disasm_z80.go: a pure function taking a byte slice and an
// address, returning a mnemonic and the instruction's size, with a
// single switch over the decoded instruction rather than a second opcode
// table.

package cpu8080

import "fmt"

var regNames = map[Reg]string{
	RegB: "B", RegC: "C", RegD: "D", RegE: "E", RegH: "H", RegL: "L",
	RegA: "A", RegF: "F", RegSP: "SP", RegBC: "B", RegDE: "D", RegHL: "H",
	RegPSW: "PSW",
}

var condNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

var aluNames = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}

func operandText(op Operand) string {
	switch op.Kind {
	case KindRegister:
		return regNames[op.Reg]
	case KindAccumulator:
		return "A"
	case KindMemoryRegPair:
		return "(" + regNames[op.Reg] + ")"
	default:
		return ""
	}
}

// Disassemble decodes the opcode at mem[addr] and formats it as 8080
// assembly mnemonic text, returning the instruction's length in bytes so
// a caller can advance to the next instruction.
func Disassemble(mem []byte, addr uint16) (string, int) {
	opcode := mem[addr]
	instr, err := Decode(opcode)
	if err != nil {
		return fmt.Sprintf("DB 0x%02X", opcode), 1
	}

	byteAt := func(off int) byte { return mem[int(addr)+off] }
	word := func(off int) uint16 { return joinBytes(byteAt(off+1), byteAt(off)) }

	switch instr.Op {
	case OpNop:
		return "NOP", 1
	case OpHalt:
		return "HLT", 1
	case OpReturn:
		return "RET", 1
	case OpReturnConditional:
		return "R" + condNames[instr.CC], 1
	case OpJump:
		return fmt.Sprintf("JMP %04Xh", word(1)), 3
	case OpJumpConditional:
		return fmt.Sprintf("J%s %04Xh", condNames[instr.CC], word(1)), 3
	case OpCall:
		return fmt.Sprintf("CALL %04Xh", word(1)), 3
	case OpCallConditional:
		return fmt.Sprintf("C%s %04Xh", condNames[instr.CC], word(1)), 3
	case OpReset:
		return fmt.Sprintf("RST %d", instr.N), 1
	case OpStackPush:
		return "PUSH " + regNames[instr.RP], 1
	case OpStackPop:
		return "POP " + regNames[instr.RP], 1
	case OpRotateLeft:
		return "RLC", 1
	case OpRotateRight:
		return "RRC", 1
	case OpRotateLeftThroughCarry:
		return "RAL", 1
	case OpRotateRightThroughCarry:
		return "RAR", 1
	case OpDecimalAdjust:
		return "DAA", 1
	case OpComplement:
		return "CMA", 1
	case OpSetCarry:
		return "STC", 1
	case OpComplementCarry:
		return "CMC", 1
	case OpDisableInterrupts:
		return "DI", 1
	case OpEnableInterrupts:
		return "EI", 1
	case OpIoOut:
		return fmt.Sprintf("OUT %02Xh", byteAt(1)), 2
	case OpIoIn:
		return fmt.Sprintf("IN %02Xh", byteAt(1)), 2
	case OpDad:
		return "DAD " + regNames[instr.RP], 1
	case OpAlu:
		src := operandText(instr.Src)
		if instr.Src.Kind == KindMemoryImmediate {
			src = fmt.Sprintf("%02Xh", byteAt(1))
			return fmt.Sprintf("%s %s", aluNames[instr.ALU], src), 2
		}
		return fmt.Sprintf("%s %s", aluNames[instr.ALU], src), 1
	case OpExchange:
		switch {
		case instr.Dst.Kind == KindRegister && instr.Dst.Reg == RegPC:
			return "PCHL", 1
		case instr.Src.Kind == KindMemoryRegPair:
			return "XTHL", 1
		default:
			return "XCHG", 1
		}
	case OpIncrement:
		if instr.Dst.Size == 2 {
			return "INX " + regNames[instr.Dst.Reg], 1
		}
		return "INR " + operandText(instr.Dst), 1
	case OpDecrement:
		if instr.Dst.Size == 2 {
			return "DCX " + regNames[instr.Dst.Reg], 1
		}
		return "DCR " + operandText(instr.Dst), 1
	case OpMove:
		if instr.Src.Kind == KindMemoryImmediate {
			return fmt.Sprintf("MVI %s,%02Xh", operandText(instr.Dst), byteAt(1)), 2
		}
		return fmt.Sprintf("MOV %s,%s", operandText(instr.Dst), operandText(instr.Src)), 1
	case OpLoad:
		switch {
		case instr.Src.Kind == KindMemoryImmediate && instr.Src.Size == 2:
			return fmt.Sprintf("LXI %s,%04Xh", regNames[instr.Dst.Reg], word(1)), 3
		case instr.Src.Kind == KindMemoryAtImmediateAddress && instr.Src.Size == 2:
			return fmt.Sprintf("LHLD %04Xh", word(1)), 3
		case instr.Src.Kind == KindMemoryAtImmediateAddress:
			return fmt.Sprintf("LDA %04Xh", word(1)), 3
		case instr.Src.Kind == KindMemoryRegPair:
			return "LDAX " + regNames[instr.Src.Reg], 1
		default:
			return "SPHL", 1
		}
	case OpStore:
		switch {
		case instr.Dst.Kind == KindMemoryAtImmediateAddress && instr.Dst.Size == 2:
			return fmt.Sprintf("SHLD %04Xh", word(1)), 3
		case instr.Dst.Kind == KindMemoryAtImmediateAddress:
			return fmt.Sprintf("STA %04Xh", word(1)), 3
		default:
			return "STAX " + regNames[instr.Dst.Reg], 1
		}
	}

	return fmt.Sprintf("DB 0x%02X", opcode), 1
}
