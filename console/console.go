// Package console wires a cartridge's mapper, the CPU, the PPU, and
// the shared MMU into a runnable machine, and drives the 1:3 CPU:PPU
// tick ratio.
package console

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/cpu"
	"github.com/bdwalton/nescore/mappers"
	"github.com/bdwalton/nescore/mmu"
	"github.com/bdwalton/nescore/ppu"
)

const (
	internalRAMSize = 0x0800 // 2KB, mirrored through 0x1FFF
	ppuPortsStart   = 0x2000
	ppuPortsEnd     = 0x4000
	apuIOStart      = 0x4000
	oamDMAAddr      = 0x4014
	apuIOEnd        = 0x4018
	saveRAMStart    = 0x6000
	saveRAMEnd      = 0x8000
	prgStart        = 0x8000
	prgEnd          = 0x10000

	// cpuToPPUTickRatio is the number of PPU ticks driven per CPU
	// instruction tick.
	cpuToPPUTickRatio = 3
)

// Console is the fully wired NES: CPU, PPU, the MMU connecting them,
// and the cartridge mapper backing PRG/CHR/save-RAM.
type Console struct {
	mem    *mmu.MMU
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
}

// New constructs a Console from a loaded cartridge. It maps the full
// CPU address space: internal RAM mirrored through 0x1FFF, PPU ports
// mirrored through 0x3FFF, the APU/IO window with OAMDMA split out as
// its own callback-bearing region, PRG-RAM at 0x6000-0x7FFF, and
// PRG-ROM at 0x8000-0xFFFF, mirrored if the cartridge carries only
// 16KB.
func New(cart *cartridge.Cartridge) (*Console, error) {
	m, err := mappers.Get(cart)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	var nmi bool
	p := ppu.New(&nmi)
	mem := mmu.New()
	c := cpu.New(mem, &nmi)

	ram := make([]byte, internalRAMSize)
	if err := mem.Map(&mmu.Region{Start: 0x0000, End: 0x2000, Backing: ram, Writable: true}); err != nil {
		return nil, err
	}
	if err := mem.Map(&mmu.Region{
		Start: ppuPortsStart, End: ppuPortsEnd,
		Backing: p.PortsBacking(), Writable: true, OnAccess: p.OnPortAccess,
	}); err != nil {
		return nil, err
	}
	if err := mem.Map(&mmu.Region{
		Start: oamDMAAddr, End: oamDMAAddr + 1,
		Backing: p.OAMDMABacking(), Writable: true, OnAccess: p.OnPortAccess,
	}); err != nil {
		return nil, err
	}

	apuio := make([]byte, apuIOEnd-apuIOStart)
	if err := mem.Map(&mmu.Region{
		Start: apuIOStart, End: oamDMAAddr,
		Backing: apuio[:oamDMAAddr-apuIOStart], Writable: true,
	}); err != nil {
		return nil, err
	}
	if err := mem.Map(&mmu.Region{
		Start: oamDMAAddr + 1, End: apuIOEnd,
		Backing: apuio[oamDMAAddr+1-apuIOStart:], Writable: true,
	}); err != nil {
		return nil, err
	}

	if err := mem.Map(&mmu.Region{
		Start: saveRAMStart, End: saveRAMEnd,
		Backing: m.SaveRAM(), Writable: true,
	}); err != nil {
		return nil, err
	}
	if err := mem.Map(&mmu.Region{
		Start: prgStart, End: prgEnd,
		Backing: m.PRG(), Writable: false,
	}); err != nil {
		return nil, err
	}

	mem.Sort()

	return &Console{mem: mem, cpu: c, ppu: p, mapper: m}, nil
}

// Reset performs the power-on sequence: load the CPU's reset vector
// and set its initial register state.
func (c *Console) Reset() error {
	return c.cpu.Reset()
}

// Step runs exactly one CPU instruction, then the PPU through the 1:3
// ratio that instruction corresponds to.
func (c *Console) Step() error {
	if err := c.cpu.Tick(); err != nil {
		return err
	}
	for i := 0; i < cpuToPPUTickRatio; i++ {
		c.ppu.Tick()
	}
	return nil
}

// Run calls Step until it returns an error (including io.EOF-shaped
// sentinel errors a debugger might use to signal a breakpoint) or
// steps is exhausted. steps <= 0 runs until Step fails.
func (c *Console) Run(steps int) error {
	for i := 0; steps <= 0 || i < steps; i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// CPU, PPU, Mapper, and MMU expose the wired components for the debug
// and preview packages.
func (c *Console) CPU() *cpu.CPU        { return c.cpu }
func (c *Console) PPU() *ppu.PPU        { return c.ppu }
func (c *Console) Mapper() mappers.Mapper { return c.mapper }
func (c *Console) MMU() *mmu.MMU        { return c.mem }
