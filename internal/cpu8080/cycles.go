// cycles.go - base cycle cost per opcode, not counting the engine's own
// +6 penalty for a taken conditional CALL/RET (conditional jumps cost the
// same whether taken or not). Undefined/unassigned opcode slots are left
// at 0 since Decode rejects them before this table is ever consulted.
// Values are the datasheet's documented T-state counts.

package cpu8080

var baseCycles = [256]uint8{
	0x00: 4, 0x01: 10, 0x02: 7, 0x03: 5, 0x04: 5, 0x05: 5, 0x06: 7, 0x07: 4,
	0x08: 0, 0x09: 10, 0x0A: 7, 0x0B: 5, 0x0C: 5, 0x0D: 5, 0x0E: 7, 0x0F: 4,

	0x10: 0, 0x11: 10, 0x12: 7, 0x13: 5, 0x14: 5, 0x15: 5, 0x16: 7, 0x17: 4,
	0x18: 0, 0x19: 10, 0x1A: 7, 0x1B: 5, 0x1C: 5, 0x1D: 5, 0x1E: 7, 0x1F: 4,

	0x20: 0, 0x21: 10, 0x22: 16, 0x23: 5, 0x24: 5, 0x25: 5, 0x26: 7, 0x27: 4,
	0x28: 0, 0x29: 10, 0x2A: 16, 0x2B: 5, 0x2C: 5, 0x2D: 5, 0x2E: 7, 0x2F: 4,

	0x30: 0, 0x31: 10, 0x32: 13, 0x33: 5, 0x34: 10, 0x35: 10, 0x36: 10, 0x37: 4,
	0x38: 0, 0x39: 10, 0x3A: 13, 0x3B: 5, 0x3C: 5, 0x3D: 5, 0x3E: 7, 0x3F: 4,

	// 0x40-0x7F: MOV r,r = 5; any operand touching (HL) = 7; HLT = 7.
	0x40: 5, 0x41: 5, 0x42: 5, 0x43: 5, 0x44: 5, 0x45: 5, 0x46: 7, 0x47: 5,
	0x48: 5, 0x49: 5, 0x4A: 5, 0x4B: 5, 0x4C: 5, 0x4D: 5, 0x4E: 7, 0x4F: 5,
	0x50: 5, 0x51: 5, 0x52: 5, 0x53: 5, 0x54: 5, 0x55: 5, 0x56: 7, 0x57: 5,
	0x58: 5, 0x59: 5, 0x5A: 5, 0x5B: 5, 0x5C: 5, 0x5D: 5, 0x5E: 7, 0x5F: 5,
	0x60: 5, 0x61: 5, 0x62: 5, 0x63: 5, 0x64: 5, 0x65: 5, 0x66: 7, 0x67: 5,
	0x68: 5, 0x69: 5, 0x6A: 5, 0x6B: 5, 0x6C: 5, 0x6D: 5, 0x6E: 7, 0x6F: 5,
	0x70: 7, 0x71: 7, 0x72: 7, 0x73: 7, 0x74: 7, 0x75: 7, 0x76: 7, 0x77: 7,
	0x78: 5, 0x79: 5, 0x7A: 5, 0x7B: 5, 0x7C: 5, 0x7D: 5, 0x7E: 7, 0x7F: 5,

	// 0x80-0xBF: ALU A,r = 4; ALU A,M = 7.
	0x80: 4, 0x81: 4, 0x82: 4, 0x83: 4, 0x84: 4, 0x85: 4, 0x86: 7, 0x87: 4,
	0x88: 4, 0x89: 4, 0x8A: 4, 0x8B: 4, 0x8C: 4, 0x8D: 4, 0x8E: 7, 0x8F: 4,
	0x90: 4, 0x91: 4, 0x92: 4, 0x93: 4, 0x94: 4, 0x95: 4, 0x96: 7, 0x97: 4,
	0x98: 4, 0x99: 4, 0x9A: 4, 0x9B: 4, 0x9C: 4, 0x9D: 4, 0x9E: 7, 0x9F: 4,
	0xA0: 4, 0xA1: 4, 0xA2: 4, 0xA3: 4, 0xA4: 4, 0xA5: 4, 0xA6: 7, 0xA7: 4,
	0xA8: 4, 0xA9: 4, 0xAA: 4, 0xAB: 4, 0xAC: 4, 0xAD: 4, 0xAE: 7, 0xAF: 4,
	0xB0: 4, 0xB1: 4, 0xB2: 4, 0xB3: 4, 0xB4: 4, 0xB5: 4, 0xB6: 7, 0xB7: 4,
	0xB8: 4, 0xB9: 4, 0xBA: 4, 0xBB: 4, 0xBC: 4, 0xBD: 4, 0xBE: 7, 0xBF: 4,

	0xC0: 5, 0xC1: 10, 0xC2: 10, 0xC3: 10, 0xC4: 11, 0xC5: 11, 0xC6: 7, 0xC7: 11,
	0xC8: 5, 0xC9: 10, 0xCA: 10, 0xCB: 0, 0xCC: 11, 0xCD: 17, 0xCE: 7, 0xCF: 11,

	0xD0: 5, 0xD1: 10, 0xD2: 10, 0xD3: 10, 0xD4: 11, 0xD5: 11, 0xD6: 7, 0xD7: 11,
	0xD8: 5, 0xD9: 0, 0xDA: 10, 0xDB: 10, 0xDC: 11, 0xDD: 0, 0xDE: 7, 0xDF: 11,

	0xE0: 5, 0xE1: 10, 0xE2: 10, 0xE3: 18, 0xE4: 11, 0xE5: 11, 0xE6: 7, 0xE7: 11,
	0xE8: 5, 0xE9: 5, 0xEA: 10, 0xEB: 4, 0xEC: 11, 0xED: 0, 0xEE: 7, 0xEF: 11,

	0xF0: 5, 0xF1: 10, 0xF2: 10, 0xF3: 4, 0xF4: 11, 0xF5: 11, 0xF6: 7, 0xF7: 11,
	0xF8: 5, 0xF9: 5, 0xFA: 10, 0xFB: 4, 0xFC: 11, 0xFD: 0, 0xFE: 7, 0xFF: 11,
}

// conditionalBranchPenalty is added when a conditional CALL or RET is
// actually taken, per the datasheet's extra memory cycle for the taken
// path. Conditional jumps cost the same whether taken or not, so no
// penalty applies to OpJumpConditional.
const conditionalBranchPenalty = 6
