package cpu8080

import "testing"

func TestALUAddOverflow(t *testing.T) {
	a := NewALU()
	a.A = 0xFF
	a.Add(0x01, false)

	requireEqualU8(t, "A", a.A, 0x00)
	requireEqualBool(t, "Zero", a.f.Zero, true)
	requireEqualBool(t, "Sign", a.f.Sign, false)
	requireEqualBool(t, "Parity", a.f.Parity, true)
	requireEqualBool(t, "Carry", a.f.Carry, true)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, true)
}

func TestALUAddNoCarry(t *testing.T) {
	a := NewALU()
	a.A = 0x14
	a.Add(0x14, false)

	requireEqualU8(t, "A", a.A, 0x28)
	requireEqualBool(t, "Zero", a.f.Zero, false)
	requireEqualBool(t, "Sign", a.f.Sign, false)
	requireEqualBool(t, "Parity", a.f.Parity, true)
	requireEqualBool(t, "Carry", a.f.Carry, false)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, false)
}

func TestALUAdcAddsCarryIn(t *testing.T) {
	a := NewALU()
	a.A = 0x01
	a.f.Carry = true
	a.Add(0x01, true)

	requireEqualU8(t, "A", a.A, 0x03)
}

func TestALUSubBorrow(t *testing.T) {
	a := NewALU()
	a.A = 0x00
	a.Sub(0x01, false)

	requireEqualU8(t, "A", a.A, 0xFF)
	requireEqualBool(t, "Sign", a.f.Sign, true)
	requireEqualBool(t, "Carry", a.f.Carry, true)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, false)
}

// TestALUSubEqualNibblesSetsAuxCarry checks that subtracting equal low
// nibbles borrows nothing, so AuxCarry reads SET under the 8080's
// inverted subtraction convention.
func TestALUSubEqualNibblesSetsAuxCarry(t *testing.T) {
	a := NewALU()
	a.A = 0x3E
	a.Sub(0x3E, false)

	requireEqualU8(t, "A", a.A, 0x00)
	requireEqualBool(t, "Zero", a.f.Zero, true)
	requireEqualBool(t, "Sign", a.f.Sign, false)
	requireEqualBool(t, "Carry", a.f.Carry, false)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, true)
	requireEqualBool(t, "Parity", a.f.Parity, true)
}

func TestALUIncPreservesCarry(t *testing.T) {
	a := NewALU()
	a.f.Carry = true
	result := a.Inc(0x0F)

	requireEqualU8(t, "result", result, 0x10)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, true)
	requireEqualBool(t, "Carry preserved", a.f.Carry, true)
}

func TestALUDecNoBorrow(t *testing.T) {
	a := NewALU()
	result := a.Dec(0x01)

	requireEqualU8(t, "result", result, 0x00)
	requireEqualBool(t, "Zero", a.f.Zero, true)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, true)
}

func TestALUDecBorrowFromNibble(t *testing.T) {
	a := NewALU()
	result := a.Dec(0x10)

	requireEqualU8(t, "result", result, 0x0F)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, false)
}

func TestALULogicalOpsForceCarryClear(t *testing.T) {
	a := NewALU()
	a.A = 0xFF
	a.f.Carry = true
	a.And(0x0F)

	requireEqualU8(t, "A", a.A, 0x0F)
	requireEqualBool(t, "Carry", a.f.Carry, false)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, false)
}

func TestALUXra(t *testing.T) {
	a := NewALU()
	a.A = 0xFF
	a.Xor(0xFF)

	requireEqualU8(t, "A", a.A, 0x00)
	requireEqualBool(t, "Zero", a.f.Zero, true)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, false)
}

func TestALUCmpLeavesAccumulatorUnchanged(t *testing.T) {
	a := NewALU()
	a.A = 0x05
	a.Cmp(0x05)

	requireEqualU8(t, "A", a.A, 0x05)
	requireEqualBool(t, "Zero", a.f.Zero, true)
}

func TestALURotates(t *testing.T) {
	a := NewALU()
	a.A = 0x85
	a.Rlc()
	requireEqualU8(t, "Rlc result", a.A, 0x0B)
	requireEqualBool(t, "Rlc carry", a.f.Carry, true)

	a2 := NewALU()
	a2.A = 0x01
	a2.Rrc()
	requireEqualU8(t, "Rrc result", a2.A, 0x80)
	requireEqualBool(t, "Rrc carry", a2.f.Carry, true)

	a3 := NewALU()
	a3.A = 0x80
	a3.Ral()
	requireEqualU8(t, "Ral result", a3.A, 0x00)
	requireEqualBool(t, "Ral carry", a3.f.Carry, true)

	a4 := NewALU()
	a4.A = 0x01
	a4.f.Carry = true
	a4.Rar()
	requireEqualU8(t, "Rar result", a4.A, 0x80)
	requireEqualBool(t, "Rar carry", a4.f.Carry, true)
}

func TestALUCma(t *testing.T) {
	a := NewALU()
	a.A = 0x0F
	a.Cma()
	requireEqualU8(t, "A", a.A, 0xF0)
}

func TestALUStcCmc(t *testing.T) {
	a := NewALU()
	a.Stc()
	requireEqualBool(t, "Stc", a.f.Carry, true)
	a.Cmc()
	requireEqualBool(t, "Cmc", a.f.Carry, false)
}

// TestALUDaaClassicCase is the textbook DAA worked example: 0x9B corrected
// to 0x01 with carry set, exercising both correction steps.
func TestALUDaaClassicCase(t *testing.T) {
	a := NewALU()
	a.A = 0x9B
	a.Daa()

	requireEqualU8(t, "A", a.A, 0x01)
	requireEqualBool(t, "Carry", a.f.Carry, true)
	requireEqualBool(t, "AuxCarry", a.f.AuxCarry, true)
}

// TestALUDaaCarryIsSticky checks that a previously set carry survives DAA
// even when the second correction step's own addition would not itself
// have produced an overflow - the resolved Open Question on DAA carry
// stickiness.
func TestALUDaaCarryIsSticky(t *testing.T) {
	a := NewALU()
	a.A = 0x01
	a.f.Carry = true
	a.Daa()

	requireEqualBool(t, "Carry stays set", a.f.Carry, true)
}

func TestALUDad(t *testing.T) {
	a := NewALU()
	result := a.Dad(0x339F, 0x339F)
	requireEqualU16(t, "HL", result, 0x673E)
	requireEqualBool(t, "Carry", a.f.Carry, false)

	result2 := a.Dad(0xFFFF, 0x0001)
	requireEqualU16(t, "HL overflow", result2, 0x0000)
	requireEqualBool(t, "Carry overflow", a.f.Carry, true)
}

func TestALUFlagsByteRoundTrip(t *testing.T) {
	a := NewALU()
	a.f = Flags{Sign: true, Zero: false, Parity: true, Carry: true, AuxCarry: false}

	f := a.F()
	requireEqualU8(t, "fixed bit 1", f&0x02, 0x02)
	requireEqualU8(t, "fixed bit 3", f&0x08, 0x00)
	requireEqualU8(t, "fixed bit 5", f&0x20, 0x00)

	a2 := NewALU()
	a2.SetF(f)
	requireEqualBool(t, "Sign", a2.f.Sign, true)
	requireEqualBool(t, "Zero", a2.f.Zero, false)
	requireEqualBool(t, "Parity", a2.f.Parity, true)
	requireEqualBool(t, "Carry", a2.f.Carry, true)
	requireEqualBool(t, "AuxCarry", a2.f.AuxCarry, false)
}
