package cpu8080

import "testing"

// TestScenarioFlagsAfterAdd checks the flag outcome of a plain ADD
// that carries out of the low nibble but not the high one.
func TestScenarioFlagsAfterAdd(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0x80}) // ADD B
	rig.cpu.ALU.A = 0x2E
	rig.cpu.Registers.B = 0x6C

	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	f := rig.cpu.ALU.Flags()
	requireEqualU8(t, "A", rig.cpu.ALU.A, 0x9A)
	requireEqualBool(t, "Sign", f.Sign, true)
	requireEqualBool(t, "Zero", f.Zero, false)
	requireEqualBool(t, "AuxCarry", f.AuxCarry, true)
	requireEqualBool(t, "Parity", f.Parity, true)
	requireEqualBool(t, "Carry", f.Carry, false)
}

// TestScenarioDaa checks the textbook two-step decimal adjustment,
// where both the low and high nibble corrections fire.
func TestScenarioDaa(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0x27}) // DAA
	rig.cpu.ALU.A = 0x9B

	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	f := rig.cpu.ALU.Flags()
	requireEqualU8(t, "A", rig.cpu.ALU.A, 0x01)
	requireEqualBool(t, "Carry", f.Carry, true)
	requireEqualBool(t, "AuxCarry", f.AuxCarry, true)
}

// TestScenarioSubtractionAuxCarry checks the 8080's inverted AuxCarry
// convention on subtraction: equal low nibbles borrow nothing, so AC ends up set.
func TestScenarioSubtractionAuxCarry(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0x90}) // SUB B
	rig.cpu.ALU.A = 0x3E
	rig.cpu.Registers.B = 0x3E

	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	f := rig.cpu.ALU.Flags()
	requireEqualU8(t, "A", rig.cpu.ALU.A, 0x00)
	requireEqualBool(t, "Zero", f.Zero, true)
	requireEqualBool(t, "Sign", f.Sign, false)
	requireEqualBool(t, "Carry", f.Carry, false)
	requireEqualBool(t, "AuxCarry", f.AuxCarry, true)
	requireEqualBool(t, "Parity", f.Parity, true)
}

// TestScenarioConditionalCallTakenAddsSixCycles checks that a taken
// conditional CALL costs its base cycles plus the 6-cycle branch penalty.
func TestScenarioConditionalCallTakenAddsSixCycles(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0xCC, 0x34, 0x12}) // CZ 0x1234
	rig.cpu.Memory.Write8(0x1234, 0xC9)                // RET
	rig.cpu.ALU.SetF(0x40)                              // Z=1
	rig.cpu.Registers.SP = 0xFF00

	callCycles, err := rig.cpu.Step()
	if err != nil {
		t.Fatalf("Step (call): %v", err)
	}
	retCycles, err := rig.cpu.Step()
	if err != nil {
		t.Fatalf("Step (ret): %v", err)
	}

	if total := uint16(callCycles) + uint16(retCycles); total != 27 {
		t.Fatalf("total cycles = %d, want 27", total)
	}
	requireEqualU16(t, "PC", rig.cpu.Registers.PC, 0x0103)
	requireEqualU16(t, "SP", rig.cpu.Registers.SP, 0xFF00)
}

// TestScenarioBDOSConsoleStub checks that a CALL to 0x0005 can be
// intercepted and made to drive console output as if BDOS serviced it.
func TestScenarioBDOSConsoleStub(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{
		0x0E, 0x02, // MVI C,2
		0x1E, 0x41, // MVI E,'A'
		0xCD, 0x05, 0x00, // CALL 0x0005
		0x76, // HLT
	})

	var output []byte
	rig.cpu.OutHandler = func(port, value byte) {
		if port == 0 {
			output = append(output, value)
		}
	}
	rig.cpu.InterceptCall(0x0005, func(c *CPU) {
		if v, _ := c.Registers.Read(RegC).Byte(); v == 2 {
			e, _ := c.Registers.Read(RegE).Byte()
			c.Out(0, e)
		}
	})
	rig.cpu.Registers.SP = 0xFF00

	if _, err := rig.cpu.Run(0); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if string(output) != "A" {
		t.Fatalf("output = %q, want %q", string(output), "A")
	}
}

// TestScenarioJumpToZeroHalts checks the JMP 0 halt convention used to
// detect a CP/M warm-boot return.
func TestScenarioJumpToZeroHalts(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0xC3, 0x00, 0x00}) // JMP 0x0000

	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	requireEqualBool(t, "Halted", rig.cpu.Halted, true)
}

func TestLxiLoadsImmediatePairAndAdvancesPC(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0x21, 0xCD, 0xAB}) // LXI H,0xABCD

	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	requireEqualU16(t, "HL", rig.cpu.Registers.Read(RegHL).Word(), 0xABCD)
	requireEqualU16(t, "PC", rig.cpu.Registers.PC, 0x0103)
}

func TestStaAndLdaRoundTripThroughMemory(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{
		0x3E, 0x99, // MVI A,0x99
		0x32, 0x00, 0x20, // STA 0x2000
		0x3E, 0x00, // MVI A,0x00
		0x3A, 0x00, 0x20, // LDA 0x2000
	})

	for i := 0; i < 4; i++ {
		if _, err := rig.cpu.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	requireEqualU8(t, "A", rig.cpu.ALU.A, 0x99)
	requireEqualU8(t, "memory at 0x2000", rig.cpu.Memory.Read8(0x2000), 0x99)
}

func TestPushPopRoundTripsPSW(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0xF5, 0xC1}) // PUSH PSW; POP B
	rig.cpu.Registers.SP = 0xFF00
	rig.cpu.ALU.A = 0x42
	rig.cpu.ALU.SetF(0xD7)

	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step (push): %v", err)
	}
	if _, err := rig.cpu.Step(); err != nil {
		t.Fatalf("Step (pop): %v", err)
	}

	requireEqualU8(t, "B", rig.cpu.Registers.B, 0x42)
	requireEqualU8(t, "C", rig.cpu.Registers.C, 0xD7)
}

func TestExecuteForReturnsOvershootPastBudget(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0x00, 0x00, 0x00, 0x00}) // NOP x4, 4 cycles each

	overshoot, err := rig.cpu.ExecuteFor(10)
	if err != nil {
		t.Fatalf("ExecuteFor: %v", err)
	}

	// Budget of 10 is exceeded only once three NOPs have run (4, 8, 12);
	// the third pushes the running total two cycles past the target.
	requireEqualU16(t, "Cycles", uint16(rig.cpu.Cycles), 12)
	if overshoot != 2 {
		t.Fatalf("overshoot = %d, want 2", overshoot)
	}
}

func TestExecuteForStopsAtHaltWithNoOvershoot(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0x76}) // HLT

	overshoot, err := rig.cpu.ExecuteFor(1000)
	if err != nil {
		t.Fatalf("ExecuteFor: %v", err)
	}

	requireEqualBool(t, "Halted", rig.cpu.Halted, true)
	if overshoot != 0 {
		t.Fatalf("overshoot = %d, want 0", overshoot)
	}
}

func TestUnknownOpcodeIsFatalToStep(t *testing.T) {
	rig := newCPUTestRig()
	rig.resetAndLoad(0x0100, []byte{0xDD}) // unassigned

	if _, err := rig.cpu.Step(); err == nil {
		t.Fatalf("expected an error decoding an unassigned opcode")
	}
}
