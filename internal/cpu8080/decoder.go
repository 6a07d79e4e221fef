// decoder.go - translates a single opcode byte into an Instruction.
// Multi-byte operands (d8/d16/a16) are never resolved here: the decoder
// only ever sees the opcode byte, so immediates are represented as
// KindMemoryImmediate/KindMemoryAtImmediateAddress operands that the
// engine in cpu.go resolves by reading forward from PC. Grounded
// opcode-family-by-opcode-family on the original source's
// Instruction::decode in cpu/instruction.rs.

package cpu8080

// Decode maps an opcode byte to an Instruction. Opcodes outside the
// documented 8080 table (the "undocumented"/unassigned slots at 0x08,
// 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD, 0xED, 0xFD) are
// rejected, matching the Non-goal that excludes undocumented opcodes.
func Decode(opcode byte) (Instruction, error) {
	ddd := (opcode >> 3) & 0x7
	sss := opcode & 0x7
	rp := (opcode >> 4) & 0x3

	switch opcode {
	case 0x00:
		return Instruction{Op: OpNop, Size: 1}, nil
	case 0x76:
		return Instruction{Op: OpHalt, Size: 1}, nil
	case 0x07:
		return Instruction{Op: OpRotateLeft, Size: 1}, nil
	case 0x0F:
		return Instruction{Op: OpRotateRight, Size: 1}, nil
	case 0x17:
		return Instruction{Op: OpRotateLeftThroughCarry, Size: 1}, nil
	case 0x1F:
		return Instruction{Op: OpRotateRightThroughCarry, Size: 1}, nil
	case 0x27:
		return Instruction{Op: OpDecimalAdjust, Size: 1}, nil
	case 0x2F:
		return Instruction{Op: OpComplement, Size: 1}, nil
	case 0x37:
		return Instruction{Op: OpSetCarry, Size: 1}, nil
	case 0x3F:
		return Instruction{Op: OpComplementCarry, Size: 1}, nil
	case 0xF3:
		return Instruction{Op: OpDisableInterrupts, Size: 1}, nil
	case 0xFB:
		return Instruction{Op: OpEnableInterrupts, Size: 1}, nil
	case 0xC9:
		return Instruction{Op: OpReturn, Size: 1}, nil
	case 0xCD:
		return Instruction{Op: OpCall, Dst: memAtImmediateAddress(2), Size: 3}, nil
	case 0xC3:
		return Instruction{Op: OpJump, Dst: memAtImmediateAddress(2), Size: 3}, nil
	case 0xE9:
		return Instruction{Op: OpExchange, Dst: regOperand(RegPC), Src: regOperand(RegHL), Size: 1}, nil
	case 0xEB:
		return Instruction{Op: OpExchange, Dst: regOperand(RegHL), Src: regOperand(RegDE), Size: 1}, nil
	case 0xE3:
		return Instruction{Op: OpExchange, Dst: regOperand(RegHL), Src: memRegPair(RegSP, 2), Size: 1}, nil
	case 0xF9:
		return Instruction{Op: OpLoad, Dst: regOperand(RegSP), Src: regOperand(RegHL), Size: 1}, nil
	case 0x22:
		return Instruction{Op: OpStore, Dst: memAtImmediateAddress(2), Src: regOperand(RegHL), Size: 3}, nil
	case 0x2A:
		return Instruction{Op: OpLoad, Dst: regOperand(RegHL), Src: memAtImmediateAddress(2), Size: 3}, nil
	case 0x32:
		return Instruction{Op: OpStore, Dst: memAtImmediateAddress(1), Src: accOperand(), Size: 3}, nil
	case 0x3A:
		return Instruction{Op: OpLoad, Dst: accOperand(), Src: memAtImmediateAddress(1), Size: 3}, nil
	case 0xD3:
		return Instruction{Op: OpIoOut, Src: memImmediate(1), Size: 2}, nil
	case 0xDB:
		return Instruction{Op: OpIoIn, Src: memImmediate(1), Size: 2}, nil
	}

	// MOV ddd,sss - 0x40-0x7F, excluding 0x76 (HLT), already handled above.
	if opcode >= 0x40 && opcode <= 0x7F {
		dst, err := operandFromSSS(ddd)
		if err != nil {
			return Instruction{}, decodeErrorf(opcode)
		}
		src, err := operandFromSSS(sss)
		if err != nil {
			return Instruction{}, decodeErrorf(opcode)
		}
		return Instruction{Op: OpMove, Dst: dst, Src: src, Size: 1}, nil
	}

	// ALU A,sss - 0x80-0xBF.
	if opcode >= 0x80 && opcode <= 0xBF {
		src, err := operandFromSSS(sss)
		if err != nil {
			return Instruction{}, decodeErrorf(opcode)
		}
		return Instruction{Op: OpAlu, ALU: aluOpFromID(ddd), Src: src, Size: 1}, nil
	}

	// ALU A,d8 - 0xC6,CE,D6,DE,E6,EE,F6,FE.
	if opcode&0xC7 == 0xC6 {
		return Instruction{Op: OpAlu, ALU: aluOpFromID(ddd), Src: memImmediate(1), Size: 2}, nil
	}

	// RST n - 0xC7,CF,D7,DF,E7,EF,F7,FF.
	if opcode&0xC7 == 0xC7 {
		return Instruction{Op: OpReset, N: ddd, Size: 1}, nil
	}

	// Rcc - 0xC0,C8,D0,D8,E0,E8,F0,F8.
	if opcode&0xC7 == 0xC0 {
		return Instruction{Op: OpReturnConditional, CC: conditionFromCC(ddd), Size: 1}, nil
	}

	// Jcc a16 - 0xC2,CA,D2,DA,E2,EA,F2,FA.
	if opcode&0xC7 == 0xC2 {
		return Instruction{Op: OpJumpConditional, CC: conditionFromCC(ddd), Dst: memAtImmediateAddress(2), Size: 3}, nil
	}

	// Ccc a16 - 0xC4,CC,D4,DC,E4,EC,F4,FC.
	if opcode&0xC7 == 0xC4 {
		return Instruction{Op: OpCallConditional, CC: conditionFromCC(ddd), Dst: memAtImmediateAddress(2), Size: 3}, nil
	}

	// POP rp - 0xC1,D1,E1,F1 (rp==3 means PSW here).
	if opcode&0xCF == 0xC1 {
		return Instruction{Op: OpStackPop, RP: regPairFromRP(rp, true), Size: 1}, nil
	}

	// PUSH rp - 0xC5,D5,E5,F5 (rp==3 means PSW here).
	if opcode&0xCF == 0xC5 {
		return Instruction{Op: OpStackPush, RP: regPairFromRP(rp, true), Size: 1}, nil
	}

	// LXI rp,d16 - 0x01,11,21,31.
	if opcode&0xCF == 0x01 {
		return Instruction{Op: OpLoad, Dst: regOperand(regPairFromRP(rp, false)), Src: memImmediate(2), Size: 3}, nil
	}

	// STAX B/D - 0x02,0x12 (only BC and DE are defined).
	if opcode&0xCF == 0x02 {
		return Instruction{Op: OpStore, Dst: memRegPair(regPairFromRP(rp, false), 1), Src: accOperand(), Size: 1}, nil
	}

	// LDAX B/D - 0x0A,0x1A (only BC and DE are defined).
	if opcode&0xCF == 0x0A {
		return Instruction{Op: OpLoad, Dst: accOperand(), Src: memRegPair(regPairFromRP(rp, false), 1), Size: 1}, nil
	}

	// INX rp - 0x03,13,23,33.
	if opcode&0xCF == 0x03 {
		return Instruction{Op: OpIncrement, Dst: regOperand(regPairFromRP(rp, false)), Size: 1}, nil
	}

	// DCX rp - 0x0B,1B,2B,3B.
	if opcode&0xCF == 0x0B {
		return Instruction{Op: OpDecrement, Dst: regOperand(regPairFromRP(rp, false)), Size: 1}, nil
	}

	// DAD rp - 0x09,19,29,39.
	if opcode&0xCF == 0x09 {
		hl := regOperand(RegHL)
		rpOp := regOperand(regPairFromRP(rp, false))
		return Instruction{Op: OpDad, Dst: regOperand(RegHL), Src: sumOperand(hl, rpOp), RP: regPairFromRP(rp, false), Size: 1}, nil
	}

	// INR ddd/M - 0x04,0C,14,1C,24,2C,34,3C.
	if opcode&0xC7 == 0x04 {
		dst, err := operandFromSSS(ddd)
		if err != nil {
			return Instruction{}, decodeErrorf(opcode)
		}
		return Instruction{Op: OpIncrement, Dst: dst, Size: 1}, nil
	}

	// DCR ddd/M - 0x05,0D,15,1D,25,2D,35,3D.
	if opcode&0xC7 == 0x05 {
		dst, err := operandFromSSS(ddd)
		if err != nil {
			return Instruction{}, decodeErrorf(opcode)
		}
		return Instruction{Op: OpDecrement, Dst: dst, Size: 1}, nil
	}

	// MVI ddd/M,d8 - 0x06,0E,16,1E,26,2E,36,3E.
	if opcode&0xC7 == 0x06 {
		dst, err := operandFromSSS(ddd)
		if err != nil {
			return Instruction{}, decodeErrorf(opcode)
		}
		return Instruction{Op: OpMove, Dst: dst, Src: memImmediate(1), Size: 2}, nil
	}

	return Instruction{}, decodeErrorf(opcode)
}
