// registers.go - the register file: six 8-bit general-purpose registers,
// PC and SP, and the pair views (BC, DE, HL, PSW) over them. A and F are
// not stored here - they live in the ALU (see alu.go) - but are reachable
// through Registers so PSW reads/writes can reassemble and decompose the
// flags byte. Grounded in the original source's cpu/registers.rs
// (RegisterArray) and cpu_z80.go's BC()/SetBC()-style pair accessors.

package cpu8080

// Reg names every operand the decoder can reference by register.
type Reg int

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegA
	RegF
	RegPC
	RegSP
	RegBC
	RegDE
	RegHL
	RegPSW
)

// regFromSSS maps the 3-bit sss/ddd register id to a Reg. id 6 ((HL)
// indirect) is not a register and is rejected here; the decoder handles it
// as a memory operand before calling this.
func regFromSSS(id byte) (Reg, error) {
	switch id {
	case 0:
		return RegB, nil
	case 1:
		return RegC, nil
	case 2:
		return RegD, nil
	case 3:
		return RegE, nil
	case 4:
		return RegH, nil
	case 5:
		return RegL, nil
	case 7:
		return RegA, nil
	default:
		return 0, decodeErrorf(id)
	}
}

// regPairFromRP maps the 2-bit rp id to a register pair. asPSW selects
// whether rp==3 means SP (arithmetic context) or PSW (PUSH/POP context).
func regPairFromRP(id byte, asPSW bool) Reg {
	switch id {
	case 0:
		return RegBC
	case 1:
		return RegDE
	case 2:
		return RegHL
	default:
		if asPSW {
			return RegPSW
		}
		return RegSP
	}
}

// width reports whether reg is an 8-bit (1) or 16-bit (2) register.
func (r Reg) width() int {
	switch r {
	case RegB, RegC, RegD, RegE, RegH, RegL, RegA, RegF:
		return 1
	default:
		return 2
	}
}

// Registers holds the general-purpose and pointer registers plus a
// reference to the ALU that owns A and F, so that PSW and A/F reads and
// writes can be served from one place without duplicating storage.
type Registers struct {
	B, C, D, E, H, L byte
	PC, SP           uint16

	alu *ALU
}

// NewRegisters returns a zeroed register file bound to alu.
func NewRegisters(alu *ALU) *Registers {
	return &Registers{alu: alu}
}

// Read returns the current value of reg.
func (r *Registers) Read(reg Reg) Value {
	switch reg {
	case RegB:
		return U8(r.B)
	case RegC:
		return U8(r.C)
	case RegD:
		return U8(r.D)
	case RegE:
		return U8(r.E)
	case RegH:
		return U8(r.H)
	case RegL:
		return U8(r.L)
	case RegA:
		return U8(r.alu.A)
	case RegF:
		return U8(r.alu.F())
	case RegPC:
		return U16(r.PC)
	case RegSP:
		return U16(r.SP)
	case RegBC:
		return Pair(r.B, r.C)
	case RegDE:
		return Pair(r.D, r.E)
	case RegHL:
		return Pair(r.H, r.L)
	case RegPSW:
		return Pair(r.alu.A, r.alu.F())
	default:
		return Value{}
	}
}

// Write stores v into reg. It fails if v's width does not match reg's
// width; writing PSW decomposes the low byte into the five flag booleans
// and the high byte into A.
func (r *Registers) Write(reg Reg, v Value) error {
	if v.Width() != reg.width() {
		return ErrRegisterWidth
	}

	switch reg {
	case RegB:
		r.B, _ = v.Byte()
	case RegC:
		r.C, _ = v.Byte()
	case RegD:
		r.D, _ = v.Byte()
	case RegE:
		r.E, _ = v.Byte()
	case RegH:
		r.H, _ = v.Byte()
	case RegL:
		r.L, _ = v.Byte()
	case RegA:
		b, _ := v.Byte()
		r.alu.A = b
	case RegF:
		b, _ := v.Byte()
		r.alu.SetF(b)
	case RegPC:
		r.PC = v.Word()
	case RegSP:
		r.SP = v.Word()
	case RegBC:
		r.B, r.C = v.Bytes()
	case RegDE:
		r.D, r.E = v.Bytes()
	case RegHL:
		r.H, r.L = v.Bytes()
	case RegPSW:
		hi, lo := v.Bytes()
		r.alu.A = hi
		r.alu.SetF(lo)
	}
	return nil
}
