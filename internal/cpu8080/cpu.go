// cpu.go - the execution engine: fetch, decode, execute, one instruction
// at a time. Grounded in CPU_Z80's Step()/Execute() shape (cpu_z80.go) -
// a small, allocation-free dispatch loop over a decoded instruction
// record - adapted from the Z80's per-prefix opcode tables to a single
// flat Decode call, since the 8080 has no prefix bytes.
//
// The core performs no internal synchronisation; a host that shares a
// *CPU across goroutines (see internal/inspector) is responsible for its
// own locking around Step/Run/ExecuteFor calls.

package cpu8080

// CPU is the complete machine state: registers, ALU, memory, I/O ports,
// and the subroutine interception table that lets a host replace a
// CALL target with native Go code (used for CP/M BDOS emulation; see
// internal/cpm).
type CPU struct {
	Registers *Registers
	ALU       *ALU
	Memory    *Memory

	Cycles            uint64
	Halted            bool
	InterruptsEnabled bool

	outPorts [256]byte
	inPorts  [256]byte

	// OutHandler, if set, is called in addition to the default
	// outPorts[port]=value store whenever OUT executes.
	OutHandler func(port, value byte)

	hooks map[uint16]func(*CPU)
}

// NewCPU returns a CPU with a fresh register file, ALU, and 64 KiB of
// zeroed memory, PC and SP both at zero.
func NewCPU() *CPU {
	alu := NewALU()
	return &CPU{
		Registers: NewRegisters(alu),
		ALU:       alu,
		Memory:    NewMemory(),
		hooks:     make(map[uint16]func(*CPU)),
	}
}

// InterceptCall installs a host handler that runs instead of whatever is
// in memory at addr. An unconditional CALL targeting addr invokes the
// handler directly in place of pushing a return address and jumping - PC
// simply advances past the CALL, with no stack manipulation. Used to
// splice in CP/M BDOS semantics at 0x0005 without the core knowing
// anything about CP/M.
func (c *CPU) InterceptCall(addr uint16, handler func(*CPU)) {
	c.hooks[addr] = handler
}

// OutPort returns the last byte written to an output port.
func (c *CPU) OutPort(port byte) byte { return c.outPorts[port] }

// Out writes value to port, the same path the OUT instruction takes -
// exposed so a subroutine-interception handler (e.g. a CP/M BDOS
// console routine) can drive port output without an opcode to execute.
func (c *CPU) Out(port, value byte) {
	c.outPorts[port] = value
	if c.OutHandler != nil {
		c.OutHandler(port, value)
	}
}

// SetInPort primes an input port with the byte a subsequent IN will read.
func (c *CPU) SetInPort(port, value byte) { c.inPorts[port] = value }

func (c *CPU) fetch8() byte {
	b := c.Memory.Read8(c.Registers.PC)
	c.Registers.PC++
	return b
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return joinBytes(hi, lo)
}

func (c *CPU) push16(v uint16) {
	hi, lo := splitWord(v)
	c.Registers.SP--
	c.Memory.Write8(c.Registers.SP, hi)
	c.Registers.SP--
	c.Memory.Write8(c.Registers.SP, lo)
}

func (c *CPU) pop16() uint16 {
	lo := c.Memory.Read8(c.Registers.SP)
	c.Registers.SP++
	hi := c.Memory.Read8(c.Registers.SP)
	c.Registers.SP++
	return joinBytes(hi, lo)
}

func (c *CPU) resolveAddress(op Operand) uint16 {
	if op.Kind == KindMemoryAtImmediateAddress {
		return c.fetch16()
	}
	return c.Registers.Read(op.Reg).Word()
}

// readOperand resolves op to a Value, consuming bytes from the
// instruction stream (advancing PC) for the immediate operand kinds.
func (c *CPU) readOperand(op Operand) (Value, error) {
	switch op.Kind {
	case KindRegister:
		return c.Registers.Read(op.Reg), nil
	case KindAccumulator:
		return U8(c.ALU.A), nil
	case KindMemoryRegPair, KindMemoryAtImmediateAddress:
		addr := c.resolveAddress(op)
		return c.Memory.Read(addr, op.Size)
	case KindMemoryImmediate:
		if op.Size == 1 {
			return U8(c.fetch8()), nil
		}
		return U16(c.fetch16()), nil
	default:
		return Value{}, ErrOperandNotWritable
	}
}

// writeOperand stores v into op, consuming address bytes from the
// instruction stream for the immediate-address kind.
func (c *CPU) writeOperand(op Operand, v Value) error {
	switch op.Kind {
	case KindRegister:
		return c.Registers.Write(op.Reg, v)
	case KindAccumulator:
		b, err := v.Byte()
		if err != nil {
			return err
		}
		c.ALU.A = b
		return nil
	case KindMemoryRegPair, KindMemoryAtImmediateAddress:
		addr := c.resolveAddress(op)
		return c.Memory.Write(addr, v)
	default:
		return ErrOperandNotWritable
	}
}

// Step executes exactly one instruction and returns the number of cycles
// it cost. A CALL intercepted via InterceptCall (see OpCall below) runs
// the host handler in place of the call and costs no more than the CALL
// itself.
func (c *CPU) Step() (uint8, error) {
	opcode := c.fetch8()
	instr, err := Decode(opcode)
	if err != nil {
		return 0, err
	}

	cycles := baseCycles[opcode]
	taken, err := c.execute(instr)
	if err != nil {
		return 0, err
	}
	if taken {
		cycles += conditionalBranchPenalty
	}
	return cycles, nil
}

// execute runs instr against the current CPU state. The returned bool
// reports whether a conditional CALL/RET was actually taken, for the
// caller's cycle accounting.
func (c *CPU) execute(instr Instruction) (bool, error) {
	switch instr.Op {
	case OpNop:
		return false, nil

	case OpLoad, OpStore, OpMove:
		v, err := c.readOperand(instr.Src)
		if err != nil {
			return false, err
		}
		return false, c.writeOperand(instr.Dst, v)

	case OpIncrement:
		if instr.Dst.Size == 2 {
			v, err := c.readOperand(instr.Dst)
			if err != nil {
				return false, err
			}
			return false, c.writeOperand(instr.Dst, U16(c.ALU.Inc16(v.Word())))
		}
		v, err := c.readOperand(instr.Dst)
		if err != nil {
			return false, err
		}
		b, _ := v.Byte()
		return false, c.writeOperand(instr.Dst, U8(c.ALU.Inc(b)))

	case OpDecrement:
		if instr.Dst.Size == 2 {
			v, err := c.readOperand(instr.Dst)
			if err != nil {
				return false, err
			}
			return false, c.writeOperand(instr.Dst, U16(c.ALU.Dec16(v.Word())))
		}
		v, err := c.readOperand(instr.Dst)
		if err != nil {
			return false, err
		}
		b, _ := v.Byte()
		return false, c.writeOperand(instr.Dst, U8(c.ALU.Dec(b)))

	case OpAlu:
		v, err := c.readOperand(instr.Src)
		if err != nil {
			return false, err
		}
		b, _ := v.Byte()
		switch instr.ALU {
		case AluAdd:
			c.ALU.Add(b, false)
		case AluAdc:
			c.ALU.Add(b, true)
		case AluSub:
			c.ALU.Sub(b, false)
		case AluSbb:
			c.ALU.Sub(b, true)
		case AluAna:
			c.ALU.And(b)
		case AluXra:
			c.ALU.Xor(b)
		case AluOra:
			c.ALU.Or(b)
		case AluCmp:
			c.ALU.Cmp(b)
		}
		return false, nil

	case OpDad:
		hl := c.Registers.Read(RegHL).Word()
		rp := c.Registers.Read(instr.RP).Word()
		result := c.ALU.Dad(hl, rp)
		return false, c.Registers.Write(RegHL, U16(result))

	case OpRotateLeft:
		c.ALU.Rlc()
		return false, nil
	case OpRotateRight:
		c.ALU.Rrc()
		return false, nil
	case OpRotateLeftThroughCarry:
		c.ALU.Ral()
		return false, nil
	case OpRotateRightThroughCarry:
		c.ALU.Rar()
		return false, nil
	case OpDecimalAdjust:
		c.ALU.Daa()
		return false, nil
	case OpComplement:
		c.ALU.Cma()
		return false, nil
	case OpSetCarry:
		c.ALU.Stc()
		return false, nil
	case OpComplementCarry:
		c.ALU.Cmc()
		return false, nil

	case OpHalt:
		c.Halted = true
		return false, nil

	case OpReturnConditional:
		if instr.CC.Evaluate(c.ALU.Flags()) {
			c.Registers.PC = c.pop16()
			return true, nil
		}
		return false, nil

	case OpReturn:
		c.Registers.PC = c.pop16()
		return false, nil

	case OpStackPop:
		v := c.pop16()
		return false, c.Registers.Write(instr.RP, U16(v))

	case OpStackPush:
		v := c.Registers.Read(instr.RP)
		c.push16(v.Word())
		return false, nil

	case OpJumpConditional:
		addr := c.fetch16()
		if instr.CC.Evaluate(c.ALU.Flags()) {
			c.jumpTo(addr)
		}
		return false, nil

	case OpJump:
		addr := c.fetch16()
		c.jumpTo(addr)
		return false, nil

	case OpCallConditional:
		addr := c.fetch16()
		if instr.CC.Evaluate(c.ALU.Flags()) {
			c.push16(c.Registers.PC)
			c.jumpTo(addr)
			return true, nil
		}
		return false, nil

	case OpCall:
		addr := c.fetch16()
		if h, ok := c.hooks[addr]; ok {
			h(c)
			return false, nil
		}
		c.push16(c.Registers.PC)
		c.jumpTo(addr)
		return false, nil

	case OpReset:
		c.push16(c.Registers.PC)
		c.Registers.PC = uint16(instr.N) * 8
		return false, nil

	case OpIoOut:
		port := c.fetch8()
		c.Out(port, c.ALU.A)
		return false, nil

	case OpIoIn:
		port := c.fetch8()
		c.ALU.A = c.inPorts[port]
		return false, nil

	case OpExchange:
		switch {
		case instr.Dst.Kind == KindRegister && instr.Dst.Reg == RegPC:
			c.Registers.PC = c.Registers.Read(RegHL).Word()
		case instr.Src.Kind == KindMemoryRegPair:
			addr := c.Registers.SP
			memVal, err := c.Memory.Read16(addr)
			if err != nil {
				return false, err
			}
			hl := c.Registers.Read(RegHL).Word()
			if err := c.Memory.Write16(addr, hl); err != nil {
				return false, err
			}
			return false, c.Registers.Write(RegHL, U16(memVal))
		default:
			hl := c.Registers.Read(RegHL)
			de := c.Registers.Read(RegDE)
			c.Registers.Write(RegHL, de)
			c.Registers.Write(RegDE, hl)
		}
		return false, nil

	case OpDisableInterrupts:
		c.InterruptsEnabled = false
		return false, nil
	case OpEnableInterrupts:
		c.InterruptsEnabled = true
		return false, nil
	}

	return false, nil
}

// jumpTo sets PC to addr, except that a jump to address zero is treated
// as the emulator's halt convention: CP/M diagnostics conventionally
// "return to the warm boot vector" at 0x0000 to signal completion, and
// there is no BIOS there for the core to jump into, so JMP 0 stops
// execution instead of faulting on whatever happens to be in memory.
func (c *CPU) jumpTo(addr uint16) {
	if addr == 0 {
		c.Halted = true
		return
	}
	c.Registers.PC = addr
}

// Run steps the CPU until it halts, a step returns an error, or maxCycles
// total cycles have been executed (0 means unbounded). It returns the
// total cycles executed and the first error encountered, if any.
func (c *CPU) Run(maxCycles uint64) (uint64, error) {
	var total uint64
	for !c.Halted {
		if maxCycles != 0 && total >= maxCycles {
			break
		}
		cycles, err := c.Step()
		if err != nil {
			return total, err
		}
		total += uint64(cycles)
		c.Cycles += uint64(cycles)
	}
	return total, nil
}

// ExecuteFor runs the CPU for approximately n cycles: it records a target
// of c.Cycles+n, then steps until c.Cycles exceeds that target, c.Halted,
// or a step errors. Because a step always completes its instruction
// rather than stopping partway through, the engine usually runs a few
// cycles past the target; ExecuteFor returns that overshoot so a caller
// pacing an external device (a UART, a timer chip) against CPU time can
// deduct it from the next call's budget instead of drifting.
func (c *CPU) ExecuteFor(n uint64) (uint64, error) {
	target := c.Cycles + n
	for c.Cycles <= target {
		if c.Halted {
			return 0, nil
		}
		cycles, err := c.Step()
		if err != nil {
			return 0, err
		}
		c.Cycles += uint64(cycles)
	}
	return c.Cycles - target, nil
}
