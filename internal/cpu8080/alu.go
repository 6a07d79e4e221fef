// alu.go - the arithmetic/logic unit: the accumulator plus the five status
// flags, and every flag-affecting 8080 operation. Grounded in the
// original source's cpu/alu.rs (Alu::add/sub/inc_dec/decimal_adjust/rotate)
// and addA/subA/andA/xorA/orA/opDAA in cpu_z80.go, adapted from the Z80's
// eight flags down to the 8080's five (no Y/X/N bits).

package cpu8080

// Flags holds the five 8080 status flags.
type Flags struct {
	Zero     bool
	Sign     bool
	Parity   bool // even parity
	Carry    bool
	AuxCarry bool
}

// flag byte bit positions: S Z 0 AC 0 P 1 C
const (
	flagBitC  = 1 << 0
	flagBit1  = 1 << 1
	flagBitP  = 1 << 2
	flagBitAC = 1 << 4
	flagBitZ  = 1 << 6
	flagBitS  = 1 << 7
)

// ALU owns the accumulator and the flags register - the two pieces of CPU
// state the datasheet shows living "inside" arithmetic logic, kept
// together since PUSH PSW/POP PSW treat them as a single 16-bit value.
type ALU struct {
	A byte
	f Flags
}

// NewALU returns a zeroed ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Flags returns the current flag booleans.
func (a *ALU) Flags() Flags { return a.f }

// F reassembles the flags into the canonical SZ0A0P1C byte, forcing bit 1
// set and bits 3 and 5 clear.
func (a *ALU) F() byte {
	var f byte = flagBit1
	if a.f.Sign {
		f |= flagBitS
	}
	if a.f.Zero {
		f |= flagBitZ
	}
	if a.f.AuxCarry {
		f |= flagBitAC
	}
	if a.f.Parity {
		f |= flagBitP
	}
	if a.f.Carry {
		f |= flagBitC
	}
	return f
}

// SetF decomposes a flags byte into the five booleans, per the SZ0A0P1C
// layout. Bits 1, 3 and 5 are ignored on read-back (they're fixed on
// write via F).
func (a *ALU) SetF(f byte) {
	a.f = Flags{
		Sign:     f&flagBitS != 0,
		Zero:     f&flagBitZ != 0,
		AuxCarry: f&flagBitAC != 0,
		Parity:   f&flagBitP != 0,
		Carry:    f&flagBitC != 0,
	}
}

func (a *ALU) setSZP(result byte) {
	a.f.Zero = result == 0
	a.f.Sign = result&0x80 != 0
	a.f.Parity = parityEven(result)
}

// Add computes A+src, adding the carry flag in too when withCarry is set
// (ADC). It updates all five flags and stores the result in A.
func (a *ALU) Add(src byte, withCarry bool) byte {
	carry := byte(0)
	if withCarry && a.f.Carry {
		carry = 1
	}

	sum := uint16(a.A) + uint16(src) + uint16(carry)
	result := byte(sum)

	a.setSZP(result)
	a.f.Carry = sum > 0xFF
	a.f.AuxCarry = (a.A&0xF)+(src&0xF)+carry > 0xF

	a.A = result
	return result
}

// Sub computes A-src, also subtracting the carry flag when withCarry is
// set (SBB). It updates all five flags and stores the result in A. The
// datasheet defines AuxCarry for subtraction the opposite way round from
// addition: it reads as SET when the low nibble did NOT need to borrow,
// CLEAR when it did - the well-known 8080 half-borrow inversion that
// 8080EXM checks for (e.g. A=0x3E minus B=0x3E gives AC=1, not AC=0,
// since equal nibbles borrow nothing).
func (a *ALU) Sub(src byte, withCarry bool) byte {
	carry := byte(0)
	if withCarry && a.f.Carry {
		carry = 1
	}

	diff := int(a.A) - int(src) - int(carry)
	result := byte(diff)

	a.setSZP(result)
	a.f.Carry = diff < 0
	a.f.AuxCarry = int(a.A&0xF)-int(src&0xF)-int(carry) >= 0

	a.A = result
	return result
}

// Cmp compares A against src (CMP) without storing the result; only the
// flags are affected, as if by Sub.
func (a *ALU) Cmp(src byte) {
	saved := a.A
	a.Sub(src, false)
	a.A = saved
}

// Inc performs the 8-bit INR operation: src+1, updating Z/S/P/AC but
// preserving carry exactly as it was.
func (a *ALU) Inc(src byte) byte {
	carry := a.f.Carry
	result := a.Add1(src)
	a.f.Carry = carry
	return result
}

// Add1 computes src+1 with ADD-style Z/S/P/AC/Carry flags and does not
// store the result in A. Inc wraps it to restore the carry flag.
func (a *ALU) Add1(src byte) byte {
	sum := uint16(src) + 1
	result := byte(sum)
	a.setSZP(result)
	a.f.Carry = sum > 0xFF
	a.f.AuxCarry = (src&0xF)+1 > 0xF
	return result
}

// Dec performs the 8-bit DCR operation: src-1, updating Z/S/P/AC but
// preserving carry. AuxCarry follows the datasheet's "no borrow from bit
// 4" interpretation (set unless the low nibble borrows), matching the
// same inversion Sub uses.
func (a *ALU) Dec(src byte) byte {
	carry := a.f.Carry
	diff := int(src) - 1
	result := byte(diff)

	a.setSZP(result)
	a.f.AuxCarry = int(src&0xF)-1 >= 0

	a.f.Carry = carry
	return result
}

// And performs ANA: A&src. Carry and AuxCarry are always cleared, per the
// original source's bitwise_and.
func (a *ALU) And(src byte) byte {
	result := a.A & src
	a.setSZP(result)
	a.f.Carry = false
	a.f.AuxCarry = false
	a.A = result
	return result
}

// Xor performs XRA: A^src. Carry and AuxCarry are always cleared.
func (a *ALU) Xor(src byte) byte {
	result := a.A ^ src
	a.setSZP(result)
	a.f.Carry = false
	a.f.AuxCarry = false
	a.A = result
	return result
}

// Or performs ORA: A|src. Carry and AuxCarry are always cleared.
func (a *ALU) Or(src byte) byte {
	result := a.A | src
	a.setSZP(result)
	a.f.Carry = false
	a.f.AuxCarry = false
	a.A = result
	return result
}

// Rlc rotates A left: the carry flag becomes the old bit 7, which also
// becomes the new bit 0.
func (a *ALU) Rlc() byte {
	msb := a.A >> 7
	a.A = (a.A << 1) | msb
	a.f.Carry = msb != 0
	return a.A
}

// Rrc rotates A right: the carry flag becomes the old bit 0, which also
// becomes the new bit 7.
func (a *ALU) Rrc() byte {
	lsb := a.A & 1
	a.A = (a.A >> 1) | (lsb << 7)
	a.f.Carry = lsb != 0
	return a.A
}

// Ral rotates A left through carry: the old carry becomes the new bit 0,
// and the old bit 7 becomes the new carry.
func (a *ALU) Ral() byte {
	oldCarry := byte(0)
	if a.f.Carry {
		oldCarry = 1
	}
	msb := a.A >> 7
	a.A = (a.A << 1) | oldCarry
	a.f.Carry = msb != 0
	return a.A
}

// Rar rotates A right through carry: the old carry becomes the new bit 7,
// and the old bit 0 becomes the new carry.
func (a *ALU) Rar() byte {
	oldCarry := byte(0)
	if a.f.Carry {
		oldCarry = 1
	}
	lsb := a.A & 1
	a.A = (a.A >> 1) | (oldCarry << 7)
	a.f.Carry = lsb != 0
	return a.A
}

// Cma complements A. No flags are affected.
func (a *ALU) Cma() byte {
	a.A = ^a.A
	return a.A
}

// Stc sets the carry flag.
func (a *ALU) Stc() {
	a.f.Carry = true
}

// Cmc complements the carry flag.
func (a *ALU) Cmc() {
	a.f.Carry = !a.f.Carry
}

// Daa performs the decimal-adjust-accumulator operation per the datasheet:
// add 6 to A if the low nibble exceeds 9 or AuxCarry is set, then add 0x60
// if the (possibly updated) high nibble exceeds 9 or Carry is set. Carry
// is sticky once set by the second step, mirroring opDAA in cpu_z80.go,
// which only ever ORs the carry bit in, never reassigns it down.
func (a *ALU) Daa() byte {
	carry := a.f.Carry
	lowNibble := a.A & 0xF
	highNibble := (a.A >> 4) & 0xF

	var correction byte
	if lowNibble > 9 || a.f.AuxCarry {
		correction |= 0x06
	}

	highNibbleAdjusted := highNibble
	if correction&0x06 != 0 && lowNibble+0x06 > 0xF {
		highNibbleAdjusted++
	}
	if highNibbleAdjusted > 9 || carry {
		correction |= 0x60
		carry = true
	}

	sum := uint16(a.A) + uint16(correction)
	result := byte(sum)

	a.f.AuxCarry = (a.A&0xF)+(correction&0xF) > 0xF
	a.setSZP(result)
	a.f.Carry = carry
	a.A = result
	return a.A
}

// Inc16 and Dec16 perform INX/DCX: plain 16-bit increment/decrement with
// no flags affected at all, per the datasheet and the original source's
// inc_dec16 (which carries no flag output).
func (a *ALU) Inc16(v uint16) uint16 { return v + 1 }
func (a *ALU) Dec16(v uint16) uint16 { return v - 1 }

// Dad performs DAD: a 16-bit add whose only flag effect is Carry (set on
// overflow past 0xFFFF). Sign/Zero/Parity/AuxCarry are left untouched.
func (a *ALU) Dad(hl, rp uint16) uint16 {
	sum := uint32(hl) + uint32(rp)
	a.f.Carry = sum > 0xFFFF
	return uint16(sum)
}
