// Package cpu implements a 6502-family instruction interpreter: a
// 256-entry opcode table, a decode loop that resolves one of thirteen
// addressing modes per opcode, and a handler catalog invoked with an
// argument built according to the opcode's instruction class.
//
// The status register uses a lazy-flag design: Z and N are never
// stored, only derived from a prev scratch byte whenever the status
// register is read (see registers.go).
package cpu

import (
	"errors"
	"fmt"

	"github.com/bdwalton/nescore/mmu"
)

// Fatal errors surfaced by the decode/eval loop.
var (
	ErrUnknownOpcode        = errors.New("unknown opcode")
	ErrUnimplementedOperation = errors.New("unimplemented operation")
	ErrNullAddress          = errors.New("handler result with no destination address")
)

const (
	nmiVectorLo = 0xFFFA
	resetVectorLo = 0xFFFC
	irqVectorLo = 0xFFFE
	stackBase   = 0x0100
)

// CPU is the 6502 interpreter: register file, the shared bus, and the
// one-bit NMI line the PPU asserts.
type CPU struct {
	regs registers
	mem  *mmu.MMU
	nmi  *bool
}

// New returns a CPU wired to mem, sampling nmi on every Tick. nmi is
// the same cell the ppu.PPU writes true into at the start of VBLANK;
// the console package owns it.
func New(mem *mmu.MMU, nmi *bool) *CPU {
	return &CPU{mem: mem, nmi: nmi}
}

// Reset loads PC from the reset vector at 0xFFFC, sets SP to 0xFD,
// sets the interrupt-disable flag, and zeros the tick counter.
func (c *CPU) Reset() error {
	pc, err := c.mem.Read16(resetVectorLo)
	if err != nil {
		return fmt.Errorf("cpu: reset vector: %w", err)
	}
	c.regs.PC = pc
	c.regs.SP = 0xFD
	c.regs.setFlag(flagI, true)
	c.regs.ticks = 0
	return nil
}

// PC, A, X, Y, SP, and Ticks expose CPU state for diagnostics and
// tests without handing out the registers struct itself.
func (c *CPU) PC() uint16     { return c.regs.PC }
func (c *CPU) A() uint8      { return c.regs.A }
func (c *CPU) X() uint8      { return c.regs.X }
func (c *CPU) Y() uint8      { return c.regs.Y }
func (c *CPU) SP() uint8     { return c.regs.SP }
func (c *CPU) Status() uint8 { return c.regs.status() }
func (c *CPU) Ticks() uint64 { return c.regs.ticks }

// Tick executes exactly one instruction: it services a pending NMI if
// asserted, then fetches, decodes, and evaluates the opcode at PC.
// One Tick is one instruction, not one clock cycle — the driver loop's
// CPU:PPU tick ratio operates at instruction granularity.
func (c *CPU) Tick() error {
	if c.nmi != nil && *c.nmi {
		if err := c.serviceNMI(); err != nil {
			return err
		}
	}

	opByte, err := c.mem.ReadByte(c.regs.PC)
	if err != nil {
		return fmt.Errorf("cpu: fetch at 0x%04X: %w", c.regs.PC, err)
	}
	c.regs.PC++

	op, ok := opcodeTable[opByte]
	if !ok {
		return fmt.Errorf("cpu: 0x%02X at 0x%04X: %w", opByte, c.regs.PC-1, ErrUnknownOpcode)
	}

	var operand0, operand1 uint8
	if op.Bytes >= 2 {
		operand0, err = c.mem.ReadByte(c.regs.PC)
		if err != nil {
			return err
		}
		c.regs.PC++
	}
	if op.Bytes >= 3 {
		operand1, err = c.mem.ReadByte(c.regs.PC)
		if err != nil {
			return err
		}
		c.regs.PC++
	}

	if err := c.eval(op, operand0, operand1); err != nil {
		return fmt.Errorf("cpu: %s: %w", op.Mnemonic, err)
	}
	c.regs.ticks++
	return nil
}

func (c *CPU) serviceNMI() error {
	if err := c.push16(c.regs.PC); err != nil {
		return err
	}
	if err := c.push(c.regs.status() &^ flagB); err != nil {
		return err
	}
	c.regs.setFlag(flagI, true)
	*c.nmi = false
	pc, err := c.mem.Read16(nmiVectorLo)
	if err != nil {
		return err
	}
	c.regs.PC = pc
	return nil
}

// eval resolves the effective address (if any), builds the handler
// argument per the opcode's instruction class, invokes the handler,
// and stores a returned value back to the accumulator or to memory.
func (c *CPU) eval(op Opcode, operand0, operand1 uint8) error {
	addr, hasAddr, err := c.effectiveAddress(op.Mode, operand0, operand1)
	if err != nil {
		return err
	}

	arg, hasArg, err := c.buildArg(op, addr, hasAddr, operand0)
	if err != nil {
		return err
	}

	h, ok := handlers[op.Mnemonic]
	if !ok {
		return ErrUnimplementedOperation
	}

	result, hasResult, err := h(c, arg, hasArg)
	if err != nil {
		return err
	}

	if !hasResult {
		return nil
	}

	if op.Mode == Accumulator {
		c.regs.A = uint8(result)
		return nil
	}

	if !hasAddr {
		return ErrNullAddress
	}
	return c.mem.WriteByte(addr, uint8(result))
}

// effectiveAddress computes the address an addressing mode resolves
// to. Implied, accumulator, immediate, and relative modes carry no
// address.
func (c *CPU) effectiveAddress(mode Mode, operand0, operand1 uint8) (addr uint16, ok bool, err error) {
	switch mode {
	case Implied, Accumulator, Immediate, Relative:
		return 0, false, nil
	case ZeroPage:
		return uint16(operand0), true, nil
	case ZeroPageX:
		return uint16(operand0 + c.regs.X), true, nil
	case ZeroPageY:
		return uint16(operand0 + c.regs.Y), true, nil
	case Absolute:
		return uint16(operand1)<<8 | uint16(operand0), true, nil
	case AbsoluteX:
		return (uint16(operand1)<<8 | uint16(operand0)) + uint16(c.regs.X), true, nil
	case AbsoluteY:
		return (uint16(operand1)<<8 | uint16(operand0)) + uint16(c.regs.Y), true, nil
	case Indirect:
		ptr := uint16(operand1)<<8 | uint16(operand0)
		target, err := c.mem.Read16(ptr)
		if err != nil {
			return 0, false, err
		}
		return target, true, nil
	case IndexedIndirect:
		zp := operand0 + c.regs.X
		target, err := c.readZeroPage16(zp)
		if err != nil {
			return 0, false, err
		}
		return target, true, nil
	case IndirectIndexed:
		target, err := c.readZeroPage16(operand0)
		if err != nil {
			return 0, false, err
		}
		return target + uint16(c.regs.Y), true, nil
	default:
		return 0, false, nil
	}
}

// readZeroPage16 reads a little-endian pointer whose two bytes both
// live in the zero page, wrapping within it rather than crossing into
// page 1 — the standard 6502 (zp,X)/(zp),Y pointer-fetch behavior.
func (c *CPU) readZeroPage16(zp uint8) (uint16, error) {
	lo, err := c.mem.ReadByte(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := c.mem.ReadByte(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// buildArg builds the value passed to the instruction handler,
// according to the opcode's instruction class and addressing mode.
//
// For the jump class's indirect mode, addr already holds the
// dereferenced 16-bit jump target (effectiveAddress resolves the
// pointer itself for Indirect), so buildArg passes addr straight
// through rather than reading one more byte through it — JMP
// ($3000) with 0x3000/0x3001 holding 0x34/0x12 must land PC at
// 0x1234, not at whatever byte lives at 0x1234.
func (c *CPU) buildArg(op Opcode, addr uint16, hasAddr bool, operand0 uint8) (uint16, bool, error) {
	switch op.Class {
	case MemoryRead:
		switch op.Mode {
		case Implied:
			return 0, false, nil
		case Accumulator:
			return uint16(c.regs.A), true, nil
		case Immediate, Relative:
			return uint16(operand0), true, nil
		default:
			v, err := c.mem.ReadByte(addr)
			if err != nil {
				return 0, false, err
			}
			return uint16(v), true, nil
		}
	case Jump:
		switch op.Mode {
		case Relative:
			return uint16(operand0), true, nil
		case Absolute, Indirect:
			return addr, true, nil
		default:
			return 0, false, nil
		}
	default: // MemoryWrite, RegisterModify, FlagsSet
		return 0, false, nil
	}
}

func (c *CPU) push(v uint8) error {
	if err := c.mem.WriteByte(stackBase+uint16(c.regs.SP), v); err != nil {
		return err
	}
	c.regs.SP--
	return nil
}

func (c *CPU) pop() (uint8, error) {
	c.regs.SP++
	return c.mem.ReadByte(stackBase + uint16(c.regs.SP))
}

func (c *CPU) push16(v uint16) error {
	if err := c.push(uint8(v >> 8)); err != nil {
		return err
	}
	return c.push(uint8(v))
}

func (c *CPU) pop16() (uint16, error) {
	lo, err := c.pop()
	if err != nil {
		return 0, err
	}
	hi, err := c.pop()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// signExtend extends an 8-bit two's complement offset to a 16-bit one,
// for relative branches.
func signExtend(b uint8) uint16 {
	return uint16(int16(int8(b)))
}
