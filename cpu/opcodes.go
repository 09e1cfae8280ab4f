package cpu

// Mode is a 6502 addressing mode.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// Class is the instruction class used by eval to decide how to build
// the handler argument and what to do with a returned value.
type Class uint8

const (
	FlagsSet Class = iota
	MemoryRead
	MemoryWrite
	RegisterModify
	Jump
)

// Opcode is the immutable per-byte descriptor: mnemonic, class,
// addressing mode, byte length, cycle count, and (via the handlers
// table) a handler identifier. Cycle count is carried for diagnostics
// only; Tick advances one instruction per call regardless of it — the
// CPU:PPU tick ratio in the driver loop is per instruction, not per
// cycle.
type Opcode struct {
	Mnemonic string
	Class    Class
	Mode     Mode
	Bytes    uint8
	Cycles   uint8
}

// opcodeTable is built once at package init and never mutated
// afterwards.
var opcodeTable = map[uint8]Opcode{
	0x69: {"ADC", MemoryRead, Immediate, 2, 2},
	0x65: {"ADC", MemoryRead, ZeroPage, 2, 3},
	0x75: {"ADC", MemoryRead, ZeroPageX, 2, 4},
	0x6D: {"ADC", MemoryRead, Absolute, 3, 4},
	0x7D: {"ADC", MemoryRead, AbsoluteX, 3, 4},
	0x79: {"ADC", MemoryRead, AbsoluteY, 3, 4},
	0x61: {"ADC", MemoryRead, IndexedIndirect, 2, 6},
	0x71: {"ADC", MemoryRead, IndirectIndexed, 2, 5},

	0x29: {"AND", MemoryRead, Immediate, 2, 2},
	0x25: {"AND", MemoryRead, ZeroPage, 2, 3},
	0x35: {"AND", MemoryRead, ZeroPageX, 2, 4},
	0x2D: {"AND", MemoryRead, Absolute, 3, 4},
	0x3D: {"AND", MemoryRead, AbsoluteX, 3, 4},
	0x39: {"AND", MemoryRead, AbsoluteY, 3, 4},
	0x21: {"AND", MemoryRead, IndexedIndirect, 2, 6},
	0x31: {"AND", MemoryRead, IndirectIndexed, 2, 5},

	0x0A: {"ASL", MemoryRead, Accumulator, 1, 2},
	0x06: {"ASL", MemoryRead, ZeroPage, 2, 5},
	0x16: {"ASL", MemoryRead, ZeroPageX, 2, 6},
	0x0E: {"ASL", MemoryRead, Absolute, 3, 6},
	0x1E: {"ASL", MemoryRead, AbsoluteX, 3, 7},

	0x90: {"BCC", Jump, Relative, 2, 2},
	0xB0: {"BCS", Jump, Relative, 2, 2},
	0xF0: {"BEQ", Jump, Relative, 2, 2},
	0x30: {"BMI", Jump, Relative, 2, 2},
	0xD0: {"BNE", Jump, Relative, 2, 2},
	0x10: {"BPL", Jump, Relative, 2, 2},
	0x50: {"BVC", Jump, Relative, 2, 2},
	0x70: {"BVS", Jump, Relative, 2, 2},

	0x24: {"BIT", MemoryRead, ZeroPage, 2, 3},
	0x2C: {"BIT", MemoryRead, Absolute, 3, 4},

	0x00: {"BRK", Jump, Implied, 2, 7},

	0x18: {"CLC", FlagsSet, Implied, 1, 2},
	0xD8: {"CLD", FlagsSet, Implied, 1, 2},
	0x58: {"CLI", FlagsSet, Implied, 1, 2},
	0xB8: {"CLV", FlagsSet, Implied, 1, 2},
	0x38: {"SEC", FlagsSet, Implied, 1, 2},
	0xF8: {"SED", FlagsSet, Implied, 1, 2},
	0x78: {"SEI", FlagsSet, Implied, 1, 2},

	0xC9: {"CMP", MemoryRead, Immediate, 2, 2},
	0xC5: {"CMP", MemoryRead, ZeroPage, 2, 3},
	0xD5: {"CMP", MemoryRead, ZeroPageX, 2, 4},
	0xCD: {"CMP", MemoryRead, Absolute, 3, 4},
	0xDD: {"CMP", MemoryRead, AbsoluteX, 3, 4},
	0xD9: {"CMP", MemoryRead, AbsoluteY, 3, 4},
	0xC1: {"CMP", MemoryRead, IndexedIndirect, 2, 6},
	0xD1: {"CMP", MemoryRead, IndirectIndexed, 2, 5},

	0xE0: {"CPX", MemoryRead, Immediate, 2, 2},
	0xE4: {"CPX", MemoryRead, ZeroPage, 2, 3},
	0xEC: {"CPX", MemoryRead, Absolute, 3, 4},

	0xC0: {"CPY", MemoryRead, Immediate, 2, 2},
	0xC4: {"CPY", MemoryRead, ZeroPage, 2, 3},
	0xCC: {"CPY", MemoryRead, Absolute, 3, 4},

	0xC6: {"DEC", MemoryRead, ZeroPage, 2, 5},
	0xD6: {"DEC", MemoryRead, ZeroPageX, 2, 6},
	0xCE: {"DEC", MemoryRead, Absolute, 3, 6},
	0xDE: {"DEC", MemoryRead, AbsoluteX, 3, 7},

	0xCA: {"DEX", RegisterModify, Implied, 1, 2},
	0x88: {"DEY", RegisterModify, Implied, 1, 2},
	0xE8: {"INX", RegisterModify, Implied, 1, 2},
	0xC8: {"INY", RegisterModify, Implied, 1, 2},

	0x49: {"EOR", MemoryRead, Immediate, 2, 2},
	0x45: {"EOR", MemoryRead, ZeroPage, 2, 3},
	0x55: {"EOR", MemoryRead, ZeroPageX, 2, 4},
	0x4D: {"EOR", MemoryRead, Absolute, 3, 4},
	0x5D: {"EOR", MemoryRead, AbsoluteX, 3, 4},
	0x59: {"EOR", MemoryRead, AbsoluteY, 3, 4},
	0x41: {"EOR", MemoryRead, IndexedIndirect, 2, 6},
	0x51: {"EOR", MemoryRead, IndirectIndexed, 2, 5},

	0xE6: {"INC", MemoryRead, ZeroPage, 2, 5},
	0xF6: {"INC", MemoryRead, ZeroPageX, 2, 6},
	0xEE: {"INC", MemoryRead, Absolute, 3, 6},
	0xFE: {"INC", MemoryRead, AbsoluteX, 3, 7},

	0x4C: {"JMP", Jump, Absolute, 3, 3},
	0x6C: {"JMP", Jump, Indirect, 3, 5},
	0x20: {"JSR", Jump, Absolute, 3, 6},

	0xA9: {"LDA", MemoryRead, Immediate, 2, 2},
	0xA5: {"LDA", MemoryRead, ZeroPage, 2, 3},
	0xB5: {"LDA", MemoryRead, ZeroPageX, 2, 4},
	0xAD: {"LDA", MemoryRead, Absolute, 3, 4},
	0xBD: {"LDA", MemoryRead, AbsoluteX, 3, 4},
	0xB9: {"LDA", MemoryRead, AbsoluteY, 3, 4},
	0xA1: {"LDA", MemoryRead, IndexedIndirect, 2, 6},
	0xB1: {"LDA", MemoryRead, IndirectIndexed, 2, 5},

	0xA2: {"LDX", MemoryRead, Immediate, 2, 2},
	0xA6: {"LDX", MemoryRead, ZeroPage, 2, 3},
	0xB6: {"LDX", MemoryRead, ZeroPageY, 2, 4},
	0xAE: {"LDX", MemoryRead, Absolute, 3, 4},
	0xBE: {"LDX", MemoryRead, AbsoluteY, 3, 4},

	0xA0: {"LDY", MemoryRead, Immediate, 2, 2},
	0xA4: {"LDY", MemoryRead, ZeroPage, 2, 3},
	0xB4: {"LDY", MemoryRead, ZeroPageX, 2, 4},
	0xAC: {"LDY", MemoryRead, Absolute, 3, 4},
	0xBC: {"LDY", MemoryRead, AbsoluteX, 3, 4},

	0x4A: {"LSR", MemoryRead, Accumulator, 1, 2},
	0x46: {"LSR", MemoryRead, ZeroPage, 2, 5},
	0x56: {"LSR", MemoryRead, ZeroPageX, 2, 6},
	0x4E: {"LSR", MemoryRead, Absolute, 3, 6},
	0x5E: {"LSR", MemoryRead, AbsoluteX, 3, 7},

	0xEA: {"NOP", FlagsSet, Implied, 1, 2},

	0x09: {"ORA", MemoryRead, Immediate, 2, 2},
	0x05: {"ORA", MemoryRead, ZeroPage, 2, 3},
	0x15: {"ORA", MemoryRead, ZeroPageX, 2, 4},
	0x0D: {"ORA", MemoryRead, Absolute, 3, 4},
	0x1D: {"ORA", MemoryRead, AbsoluteX, 3, 4},
	0x19: {"ORA", MemoryRead, AbsoluteY, 3, 4},
	0x01: {"ORA", MemoryRead, IndexedIndirect, 2, 6},
	0x11: {"ORA", MemoryRead, IndirectIndexed, 2, 5},

	0x48: {"PHA", RegisterModify, Implied, 1, 3},
	0x08: {"PHP", RegisterModify, Implied, 1, 3},
	0x68: {"PLA", RegisterModify, Implied, 1, 4},
	0x28: {"PLP", RegisterModify, Implied, 1, 4},

	0x2A: {"ROL", MemoryRead, Accumulator, 1, 2},
	0x26: {"ROL", MemoryRead, ZeroPage, 2, 5},
	0x36: {"ROL", MemoryRead, ZeroPageX, 2, 6},
	0x2E: {"ROL", MemoryRead, Absolute, 3, 6},
	0x3E: {"ROL", MemoryRead, AbsoluteX, 3, 7},

	0x6A: {"ROR", MemoryRead, Accumulator, 1, 2},
	0x66: {"ROR", MemoryRead, ZeroPage, 2, 5},
	0x76: {"ROR", MemoryRead, ZeroPageX, 2, 6},
	0x6E: {"ROR", MemoryRead, Absolute, 3, 6},
	0x7E: {"ROR", MemoryRead, AbsoluteX, 3, 7},

	0x40: {"RTI", Jump, Implied, 1, 6},
	0x60: {"RTS", Jump, Implied, 1, 6},

	0xE9: {"SBC", MemoryRead, Immediate, 2, 2},
	0xE5: {"SBC", MemoryRead, ZeroPage, 2, 3},
	0xF5: {"SBC", MemoryRead, ZeroPageX, 2, 4},
	0xED: {"SBC", MemoryRead, Absolute, 3, 4},
	0xFD: {"SBC", MemoryRead, AbsoluteX, 3, 4},
	0xF9: {"SBC", MemoryRead, AbsoluteY, 3, 4},
	0xE1: {"SBC", MemoryRead, IndexedIndirect, 2, 6},
	0xF1: {"SBC", MemoryRead, IndirectIndexed, 2, 5},

	0x85: {"STA", MemoryWrite, ZeroPage, 2, 3},
	0x95: {"STA", MemoryWrite, ZeroPageX, 2, 4},
	0x8D: {"STA", MemoryWrite, Absolute, 3, 4},
	0x9D: {"STA", MemoryWrite, AbsoluteX, 3, 5},
	0x99: {"STA", MemoryWrite, AbsoluteY, 3, 5},
	0x81: {"STA", MemoryWrite, IndexedIndirect, 2, 6},
	0x91: {"STA", MemoryWrite, IndirectIndexed, 2, 6},

	0x86: {"STX", MemoryWrite, ZeroPage, 2, 3},
	0x96: {"STX", MemoryWrite, ZeroPageY, 2, 4},
	0x8E: {"STX", MemoryWrite, Absolute, 3, 4},

	0x84: {"STY", MemoryWrite, ZeroPage, 2, 3},
	0x94: {"STY", MemoryWrite, ZeroPageX, 2, 4},
	0x8C: {"STY", MemoryWrite, Absolute, 3, 4},

	0xAA: {"TAX", RegisterModify, Implied, 1, 2},
	0xA8: {"TAY", RegisterModify, Implied, 1, 2},
	0xBA: {"TSX", RegisterModify, Implied, 1, 2},
	0x8A: {"TXA", RegisterModify, Implied, 1, 2},
	0x9A: {"TXS", RegisterModify, Implied, 1, 2},
	0x98: {"TYA", RegisterModify, Implied, 1, 2},
}
